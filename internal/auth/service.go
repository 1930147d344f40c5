// Package auth implements the authentication core: Argon2id password hashing,
// HS256 token issuance/verification and the register/login flows on top of a
// user store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duccv/auth-service/internal/user"
)

var (
	// ErrInvalidInput is a client-fixable validation failure on register.
	ErrInvalidInput = errors.New("invalid email or password")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must surface it identically for both cases.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrStorage            = errors.New("storage failure")
)

const minPasswordLength = 6

// Service orchestrates the register and login use cases. It is stateless
// across requests and safe for concurrent use.
type Service struct {
	store  user.Store
	tokens *TokenManager
	logger *zap.Logger
}

func NewService(store user.Store, tokens *TokenManager) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: zap.L(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, hashes the password and persists a new user.
// The returned id identifies the created account.
func (s *Service) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < minPasswordLength {
		return uuid.Nil, ErrInvalidInput
	}

	s.logger.Info("Registering user", zap.String("email", email))

	hash, err := HashPassword(password)
	if err != nil {
		s.logger.Error("Password hashing failed", zap.Error(err))
		return uuid.Nil, fmt.Errorf("password hashing failed: %w", err)
	}

	id := uuid.New()
	err = s.store.Create(ctx, &user.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
	})
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, user.ErrDuplicateEmail):
		return uuid.Nil, ErrDuplicateEmail
	default:
		s.logger.Error("User insert failed", zap.String("email", email), zap.Error(err))
		return uuid.Nil, ErrStorage
	}
}

// Login verifies the credentials and issues a bearer token on success.
// Unknown email and wrong password produce the same ErrInvalidCredentials;
// the difference exists only in the logs below.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	u, err := s.store.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, user.ErrNotFound):
		s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
		return "", ErrInvalidCredentials
	default:
		s.logger.Error("User lookup failed", zap.String("email", email), zap.Error(err))
		return "", ErrStorage
	}

	if !VerifyPassword(password, u.PasswordHash) {
		s.logger.Warn("Login attempt with wrong password", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.logger.Error("Token issue failed", zap.String("email", email), zap.Error(err))
		return "", fmt.Errorf("token issue failed: %w", err)
	}

	return token, nil
}
