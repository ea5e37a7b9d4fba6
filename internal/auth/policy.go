package auth

// AccessTokenPrefix is the session store key namespace.
const AccessTokenPrefix = "access_token:"

// SessionPolicy decides how issued tokens are keyed in the session store.
// With MultiLogin enabled every login gets its own entry keyed by session id,
// so sessions for the same account coexist. With it disabled the key is the
// user id: a new login overwrites the previous entry and the old token, while
// still cryptographically valid, no longer resolves during validation. That
// overwrite is the entire single-session enforcement; nothing actively kicks
// the old session.
type SessionPolicy struct {
	MultiLogin bool
}

// StoreKey returns the store key for a login with the given identifiers.
func (p SessionPolicy) StoreKey(userID, sessionID string) string {
	if p.MultiLogin {
		return AccessTokenPrefix + sessionID
	}
	return AccessTokenPrefix + userID
}
