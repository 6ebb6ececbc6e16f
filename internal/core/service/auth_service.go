package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
	"github.com/fullstacklabs/identity-api/internal/pkg/password"
	"github.com/fullstacklabs/identity-api/internal/pkg/token"
)

const minPasswordLen = 8

// AuthService implements signup and login on top of the credential store,
// the password hasher and the token codec. Throttle and audit are optional;
// a nil value disables the feature.
type AuthService struct {
	users    ports.UserRepository
	hasher   *password.Hasher
	codec    *token.Codec
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *password.Hasher,
	codec *token.Codec,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		throttle: throttle,
		audit:    audit,
		logger:   logger,
	}
}

// Register creates a new credential record. The email key is normalized
// before the uniqueness check; the store enforces uniqueness atomically, so
// a duplicate signup fails with domain.ErrUserExists without side effects.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if input.Username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrValidation)
	}
	if err := checkPasswordStrength(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	s.record(domain.AuthEvent{Type: domain.AuditSignup, SubjectKey: email, SubjectID: created.ID})

	return created, nil
}

// Login verifies credentials and mints a token. A missing account performs a
// dummy hash comparison before failing, so its latency matches the
// wrong-password path and the response never reveals whether the key exists.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (string, *domain.User, error) {
	key := domain.NormalizeEmail(email)
	if key == "" || plaintext == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	if locked := s.throttled(ctx, key); locked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.DummyVerify()
			s.loginFailed(ctx, key, "")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.loginFailed(ctx, key, user.ID)
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	s.record(domain.AuthEvent{Type: domain.AuditLoginSuccess, SubjectKey: key, SubjectID: user.ID})

	return signed, user, nil
}

// throttled reports whether the key is locked out. Throttle store errors
// fail open: a Redis outage must not take logins down with it.
func (s *AuthService) throttled(ctx context.Context, key string) bool {
	if s.throttle == nil {
		return false
	}
	allowed, err := s.throttle.Allow(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		return false
	}
	return !allowed
}

func (s *AuthService) loginFailed(ctx context.Context, key, userID string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.record(domain.AuthEvent{Type: domain.AuditLoginFailure, SubjectKey: key, SubjectID: userID})
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Submit(event)
}

// checkPasswordStrength enforces the minimum policy: at least 8 characters
// with one letter and one digit.
func checkPasswordStrength(plaintext string) error {
	if len(plaintext) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	var letter, digit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", domain.ErrValidation)
	}
	return nil
}
