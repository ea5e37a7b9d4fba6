package auth

import "testing"

func TestStoreKeyMultiLogin(t *testing.T) {
	policy := SessionPolicy{MultiLogin: true}

	key := policy.StoreKey("42", "session-a")
	if key != "access_token:session-a" {
		t.Errorf("StoreKey = %q, want access_token:session-a", key)
	}

	// Distinct logins for the same account get distinct keys.
	other := policy.StoreKey("42", "session-b")
	if other == key {
		t.Error("multi-login keys for distinct sessions should differ")
	}
}

func TestStoreKeySingleLogin(t *testing.T) {
	policy := SessionPolicy{MultiLogin: false}

	key := policy.StoreKey("42", "session-a")
	if key != "access_token:42" {
		t.Errorf("StoreKey = %q, want access_token:42", key)
	}

	// Every login for the account lands on the same key, so the newest
	// login overwrites the previous session.
	other := policy.StoreKey("42", "session-b")
	if other != key {
		t.Errorf("single-login keys should collide per user, got %q and %q", key, other)
	}
}
