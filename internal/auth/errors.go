package auth

import "errors"

// Credential errors. The HTTP layer maps ErrInvalidCredentials to a single
// uniform message so a caller cannot tell a bad username from a bad password.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCaptchaRequired    = errors.New("captcha code is required")
	ErrCaptchaMismatch    = errors.New("captcha code is incorrect or expired")
	ErrAccountDisabled    = errors.New("user account is disabled")
	ErrAccountLocked      = errors.New("user account is locked")
)

// Token and session errors.
var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrMalformedToken   = errors.New("token is malformed")
	ErrSessionRevoked   = errors.New("session has been revoked")
)

// ErrStoreUnavailable wraps session store I/O failures. It is an
// infrastructure error, never an authentication verdict: a store timeout
// must not be reported as an absent session.
var ErrStoreUnavailable = errors.New("session store unavailable")
