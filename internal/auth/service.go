package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"opsconsole-backend/internal/database"
	"opsconsole-backend/internal/models"
)

// Config cache keys, kept bit-compatible with the persisted sys_config rows.
const (
	ConfigKeyCaptchaEnabled  = "sys.account.captchaEnabled"
	ConfigKeyRegisterEnabled = "sys.account.registerUser"
)

// Registration errors.
var (
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrUserNameTaken        = errors.New("username is already taken")
)

// UserRepository is the persistence surface the authenticator needs.
type UserRepository interface {
	GetByID(id int64) (*models.User, error)
	GetByUserName(name string) (*models.User, error)
	ExistsByUserName(name string) (bool, error)
	Create(user *models.User) error
	UpdateLoginMetadata(id int64, ip string, when time.Time) error
}

// DeptRepository resolves the department claims embedded in tokens.
type DeptRepository interface {
	GetByID(id int64) (*models.Dept, error)
}

// SessionStore is a TTL'd key/value mapping backed by an external cache.
// Get returns ("", nil) for an absent key; any non-nil error is an I/O
// failure, never a statement about session validity.
type SessionStore interface {
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ConfigCache serves cached system configuration flags.
// GetFlag returns ("", nil) when the key is absent.
type ConfigCache interface {
	GetFlag(ctx context.Context, key string) (string, error)
}

// CaptchaStore resolves and consumes one-time captcha codes by correlation id.
type CaptchaStore interface {
	GetAndConsume(ctx context.Context, correlationID string) (string, error)
}

// Service handles authentication and the session lifecycle
type Service struct {
	users   UserRepository
	depts   DeptRepository
	store   SessionStore
	flags   ConfigCache
	captcha CaptchaStore
	codec   *TokenCodec
	policy  SessionPolicy

	tokenTTL time.Duration
	storeTTL time.Duration
}

// ServiceConfig collects the dependencies and tunables for NewService.
type ServiceConfig struct {
	Users    UserRepository
	Depts    DeptRepository
	Store    SessionStore
	Flags    ConfigCache
	Captcha  CaptchaStore
	Secret   []byte
	TokenTTL time.Duration
	StoreTTL time.Duration
	Policy   SessionPolicy
}

// NewService creates a new auth service
func NewService(cfg ServiceConfig) *Service {
	if cfg.StoreTTL < cfg.TokenTTL {
		cfg.StoreTTL = cfg.TokenTTL
	}
	return &Service{
		users:    cfg.Users,
		depts:    cfg.Depts,
		store:    cfg.Store,
		flags:    cfg.Flags,
		captcha:  cfg.Captcha,
		codec:    NewTokenCodec(cfg.Secret),
		policy:   cfg.Policy,
		tokenTTL: cfg.TokenTTL,
		storeTTL: cfg.StoreTTL,
	}
}

// Codec exposes the token codec, mainly for tests and tooling.
func (s *Service) Codec() *TokenCodec { return s.codec }

// Authenticate verifies login credentials and returns the matched user and
// department. Captcha verification runs before the user lookup so a captcha
// failure reveals nothing about whether the username exists.
func (s *Service) Authenticate(ctx context.Context, req models.LoginRequest) (*models.User, *models.Dept, error) {
	flag, err := s.flags.GetFlag(ctx, ConfigKeyCaptchaEnabled)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if flag == "true" {
		if req.Code == "" || req.UUID == "" {
			return nil, nil, ErrCaptchaRequired
		}
		code, err := s.captcha.GetAndConsume(ctx, req.UUID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if code == "" || !strings.EqualFold(code, req.Code) {
			return nil, nil, ErrCaptchaMismatch
		}
	}

	user, err := s.users.GetByUserName(req.UserName)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			// Collapses into the uniform credential error.
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("user lookup: %w", err)
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	switch user.Status {
	case models.StatusDisabled:
		return nil, nil, ErrAccountDisabled
	case models.StatusLocked:
		return nil, nil, ErrAccountLocked
	}

	dept, err := s.depts.GetByID(user.DeptID)
	if err != nil {
		dept = nil // dept claim is optional
	}

	return user, dept, nil
}

// IssueSession mints a token for an authenticated user, persists it in the
// session store under the policy's key and records the login metadata.
// The store TTL is independent of the claim expiry; validation checks both.
func (s *Service) IssueSession(ctx context.Context, user *models.User, dept *models.Dept, loginInfo, ip string) (string, error) {
	sessionID := uuid.NewString()

	claims := Claims{
		SessionID: sessionID,
		UserID:    strconv.FormatInt(user.ID, 10),
		UserName:  user.UserName,
		LoginInfo: loginInfo,
	}
	if dept != nil {
		claims.DeptName = dept.DeptName
	}

	token, err := s.codec.Mint(claims, s.tokenTTL)
	if err != nil {
		return "", err
	}

	key := s.policy.StoreKey(claims.UserID, sessionID)
	if err := s.store.Set(ctx, key, token, s.storeTTL); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Best effort; a failed metadata update must not fail the login.
	_ = s.users.UpdateLoginMetadata(user.ID, ip, time.Now())

	return token, nil
}

// Validate decodes a presented token and cross-checks it against the session
// store. A decoded-but-unresolvable token means the session was revoked,
// either by logout or by a newer login overwriting the single-session key.
func (s *Service) Validate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.codec.Decode(token, true)
	if err != nil {
		return nil, err
	}

	key := s.policy.StoreKey(claims.UserID, claims.SessionID)
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if stored != token {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// CurrentUser validates a token and resolves the account behind it. An
// account disabled after login is rejected even while its session is live.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, *Claims, error) {
	claims, err := s.Validate(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, nil, ErrMalformedToken
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, nil, ErrSessionRevoked
	}
	if user.Status == models.StatusDisabled {
		return nil, nil, ErrAccountDisabled
	}

	return user, claims, nil
}

// Revoke deletes the store entry for a token. Expiry is not verified during
// decode so a lapsed token can still be logged out. Revoking an absent or
// never-issued session is not an error.
func (s *Service) Revoke(ctx context.Context, token string) error {
	claims, err := s.codec.Decode(token, false)
	if err != nil {
		return err
	}

	key := s.policy.StoreKey(claims.UserID, claims.SessionID)
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Register creates a new account when self-registration is enabled.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	flag, err := s.flags.GetFlag(ctx, ConfigKeyRegisterEnabled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if flag != "true" {
		return nil, ErrRegistrationDisabled
	}

	exists, err := s.users.ExistsByUserName(req.UserName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserNameTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	nickName := req.NickName
	if nickName == "" {
		nickName = req.UserName
	}

	user := &models.User{
		UserName:     req.UserName,
		NickName:     nickName,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       models.StatusNormal,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
