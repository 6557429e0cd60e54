package service

import (
	"context"
	"fmt"

	"journalapi/internal/domain"
	"journalapi/pkg/logger"
	"journalapi/pkg/metrics"
)

type AuthService struct {
	users  domain.UserRepository
	logger logger.Logger
}

func NewAuthService(users domain.UserRepository, logger logger.Logger) domain.AuthService {
	return &AuthService{
		users:  users,
		logger: logger,
	}
}

// Login compares the credentials against the stored plaintext values. Empty
// credentials are rejected before any statement is issued.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if creds.Username.String == "" || creds.Password.String == "" {
		metrics.RecordLogin("rejected")
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByCredentials(ctx, creds.Username.String, creds.Password.String)
	if err != nil {
		metrics.RecordLogin("error")
		s.logger.ErrorContext(ctx, "Error during login", map[string]interface{}{"username": creds.Username.String, "error": err.Error()})
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if user == nil {
		metrics.RecordLogin("invalid")
		s.logger.WarnContext(ctx, "Invalid credentials", map[string]interface{}{"username": creds.Username.String})
		return nil, domain.ErrInvalidCredentials
	}

	metrics.RecordLogin("success")
	s.logger.InfoContext(ctx, "Login successful", map[string]interface{}{"id": user.ID})
	return user, nil
}
