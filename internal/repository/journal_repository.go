package repository

import (
	"context"
	"database/sql"
	"fmt"

	"journalapi/internal/domain"
	"journalapi/pkg/database"
	"journalapi/pkg/logger"
)

const entityJournals = "journals"

type JournalRepository struct {
	store  *database.Store
	logger logger.Logger
}

func NewJournalRepository(store *database.Store, logger logger.Logger) domain.JournalRepository {
	return &JournalRepository{
		store:  store,
		logger: logger,
	}
}

func journalFields(j *domain.Journal) []any {
	return []any{&j.ID, &j.UserID, &j.Title, &j.Content, &j.CreatedAt}
}

func (r *JournalRepository) FindAll(ctx context.Context) ([]domain.Journal, error) {
	stmt := database.Statement{
		Operation: "select",
		Entity:    entityJournals,
		Query:     `SELECT ` + journalColumns + ` FROM journals`,
	}

	journals := make([]domain.Journal, 0)
	err := r.store.Query(ctx, stmt, func(rows *sql.Rows) error {
		var journal domain.Journal
		if err := rows.Scan(journalFields(&journal)...); err != nil {
			return err
		}
		journals = append(journals, journal)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journals could not be listed: %w", err)
	}

	return journals, nil
}

func (r *JournalRepository) FindByID(ctx context.Context, id int64) (*domain.Journal, error) {
	stmt := database.Statement{
		Operation: "select",
		Entity:    entityJournals,
		Query:     `SELECT ` + journalColumns + ` FROM journals WHERE id = ?`,
		Args:      []any{id},
	}

	var journal domain.Journal
	found, err := r.store.QueryRow(ctx, stmt, journalFields(&journal)...)
	if err != nil {
		return nil, fmt.Errorf("journal could not be fetched: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &journal, nil
}

func (r *JournalRepository) Create(ctx context.Context, journal *domain.Journal) (int64, error) {
	stmt := database.Statement{
		Operation: "insert",
		Entity:    entityJournals,
		Query:     `INSERT INTO journals (userId, title, content, created_at) VALUES (?, ?, ?, ?)`,
		Args:      []any{journal.UserID, journal.Title, journal.Content, journal.CreatedAt},
	}

	id, err := r.store.Insert(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("journal could not be created: %w", err)
	}

	journal.ID = domain.NewID(id)
	return id, nil
}

// Update overwrites every column; nil fields become NULL.
func (r *JournalRepository) Update(ctx context.Context, journal *domain.Journal) (int64, error) {
	stmt := database.Statement{
		Operation: "update",
		Entity:    entityJournals,
		Query:     `UPDATE journals SET userId = ?, title = ?, content = ?, created_at = ? WHERE id = ?`,
		Args:      []any{journal.UserID, journal.Title, journal.Content, journal.CreatedAt, journal.ID},
	}

	affected, err := r.store.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("journal could not be updated: %w", err)
	}
	if affected == 0 {
		r.logger.WithContext(ctx).Debug("Update matched no journal", map[string]interface{}{"id": journal.ID})
	}

	return affected, nil
}

func (r *JournalRepository) Delete(ctx context.Context, id domain.ID) (int64, error) {
	stmt := database.Statement{
		Operation: "delete",
		Entity:    entityJournals,
		Query:     `DELETE FROM journals WHERE id = ?`,
		Args:      []any{id},
	}

	affected, err := r.store.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("journal could not be deleted: %w", err)
	}
	if affected == 0 {
		r.logger.WithContext(ctx).Debug("Delete matched no journal", map[string]interface{}{"id": id})
	}

	return affected, nil
}
