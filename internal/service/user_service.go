package service

import (
	"context"
	"fmt"

	"journalapi/internal/domain"
	"journalapi/pkg/logger"
)

type UserService struct {
	repo   domain.UserRepository
	logger logger.Logger
}

func NewUserService(repo domain.UserRepository, logger logger.Logger) domain.UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching users", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("users could not be listed: %w", err)
	}

	return users, nil
}

// GetUserByID returns nil without an error when no user has the id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching user", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("user could not be fetched: %w", err)
	}

	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating user", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("user could not be created: %w", err)
	}

	s.logger.InfoContext(ctx, "User created", map[string]interface{}{"id": id})
	return id, nil
}

func (s *UserService) UpdateUser(ctx context.Context, user *domain.User) error {
	if _, err := s.repo.Update(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "Error updating user", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("user could not be updated: %w", err)
	}

	return nil
}

// DeleteUser succeeds even when nothing matched the id.
func (s *UserService) DeleteUser(ctx context.Context, id domain.ID) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Error deleting user", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("user could not be deleted: %w", err)
	}

	return nil
}
