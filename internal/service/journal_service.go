package service

import (
	"context"
	"fmt"

	"journalapi/internal/domain"
	"journalapi/pkg/logger"
)

type JournalService struct {
	repo   domain.JournalRepository
	logger logger.Logger
}

func NewJournalService(repo domain.JournalRepository, logger logger.Logger) domain.JournalService {
	return &JournalService{
		repo:   repo,
		logger: logger,
	}
}

func (s *JournalService) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	journals, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching journals", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("journals could not be listed: %w", err)
	}

	return journals, nil
}

func (s *JournalService) GetJournalByID(ctx context.Context, id int64) (*domain.Journal, error) {
	journal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching journal", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("journal could not be fetched: %w", err)
	}

	return journal, nil
}

// CreateJournal does not check that userId refers to an existing user.
func (s *JournalService) CreateJournal(ctx context.Context, journal *domain.Journal) (int64, error) {
	id, err := s.repo.Create(ctx, journal)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating journal", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("journal could not be created: %w", err)
	}

	s.logger.InfoContext(ctx, "Journal created", map[string]interface{}{"id": id, "user_id": journal.UserID})
	return id, nil
}

func (s *JournalService) UpdateJournal(ctx context.Context, journal *domain.Journal) error {
	if _, err := s.repo.Update(ctx, journal); err != nil {
		s.logger.ErrorContext(ctx, "Error updating journal", map[string]interface{}{"id": journal.ID, "error": err.Error()})
		return fmt.Errorf("journal could not be updated: %w", err)
	}

	return nil
}

func (s *JournalService) DeleteJournal(ctx context.Context, id domain.ID) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Error deleting journal", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("journal could not be deleted: %w", err)
	}

	return nil
}
