package auth

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksAfterMaxAttempts(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("attempt past the limit should be blocked")
	}
	if rl.BlockedUntil("10.0.0.1").IsZero() {
		t.Error("BlockedUntil should report a block")
	}

	// Other clients are unaffected.
	if !rl.Allow("10.0.0.2") {
		t.Error("a different key should not be blocked")
	}
}

func TestRateLimiterRecordSuccess(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, time.Minute)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	rl.RecordSuccess("10.0.0.1")

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("attempt %d after reset should be allowed", i+1)
		}
	}
}
