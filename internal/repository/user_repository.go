package repository

import (
	"context"
	"database/sql"
	"fmt"

	"journalapi/internal/domain"
	"journalapi/pkg/database"
	"journalapi/pkg/logger"
)

const (
	entityUsers    = "users"
	userColumns    = `id, fname, lname, username, password`
	journalColumns = `id, userId, title, content, created_at`
)

type UserRepository struct {
	store  *database.Store
	logger logger.Logger
}

func NewUserRepository(store *database.Store, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		store:  store,
		logger: logger,
	}
}

func userFields(u *domain.User) []any {
	return []any{&u.ID, &u.FName, &u.LName, &u.Username, &u.Password}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	stmt := database.Statement{
		Operation: "select",
		Entity:    entityUsers,
		Query:     `SELECT ` + userColumns + ` FROM users`,
	}

	users := make([]domain.User, 0)
	err := r.store.Query(ctx, stmt, func(rows *sql.Rows) error {
		var user domain.User
		if err := rows.Scan(userFields(&user)...); err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("users could not be listed: %w", err)
	}

	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	stmt := database.Statement{
		Operation: "select",
		Entity:    entityUsers,
		Query:     `SELECT ` + userColumns + ` FROM users WHERE id = ?`,
		Args:      []any{id},
	}

	var user domain.User
	found, err := r.store.QueryRow(ctx, stmt, userFields(&user)...)
	if err != nil {
		return nil, fmt.Errorf("user could not be fetched: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	stmt := database.Statement{
		Operation: "select",
		Entity:    entityUsers,
		Query:     `SELECT ` + userColumns + ` FROM users WHERE username = ? AND password = ?`,
		Args:      []any{username, password},
	}

	var user domain.User
	found, err := r.store.QueryRow(ctx, stmt, userFields(&user)...)
	if err != nil {
		return nil, fmt.Errorf("credentials could not be checked: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	stmt := database.Statement{
		Operation: "insert",
		Entity:    entityUsers,
		Query:     `INSERT INTO users (fname, lname, username, password) VALUES (?, ?, ?, ?)`,
		Args:      []any{user.FName, user.LName, user.Username, user.Password},
	}

	id, err := r.store.Insert(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("user could not be created: %w", err)
	}

	user.ID = domain.NewID(id)
	return id, nil
}

// Update overwrites every column; nil fields become NULL.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (int64, error) {
	stmt := database.Statement{
		Operation: "update",
		Entity:    entityUsers,
		Query:     `UPDATE users SET fname = ?, lname = ?, username = ?, password = ? WHERE id = ?`,
		Args:      []any{user.FName, user.LName, user.Username, user.Password, user.ID},
	}

	affected, err := r.store.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("user could not be updated: %w", err)
	}
	if affected == 0 {
		r.logger.WithContext(ctx).Debug("Update matched no user", map[string]interface{}{"id": user.ID})
	}

	return affected, nil
}

func (r *UserRepository) Delete(ctx context.Context, id domain.ID) (int64, error) {
	stmt := database.Statement{
		Operation: "delete",
		Entity:    entityUsers,
		Query:     `DELETE FROM users WHERE id = ?`,
		Args:      []any{id},
	}

	affected, err := r.store.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("user could not be deleted: %w", err)
	}
	if affected == 0 {
		r.logger.WithContext(ctx).Debug("Delete matched no user", map[string]interface{}{"id": id})
	}

	return affected, nil
}
