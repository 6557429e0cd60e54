package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Statement is one parameterized SQL statement. Queries use ? placeholders and
// are rebound for the active dialect. Operation and Entity label logs, metrics
// and spans.
type Statement struct {
	Operation string
	Entity    string
	Query     string
	Args      []any
}

// Store issues single statements against the pool. Each call runs under the
// configured timeout so a stuck server or an exhausted pool surfaces as an
// error instead of blocking the request.
type Store struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
	hooks   hookChain
}

func NewStore(cm *ConnectionManager, timeout time.Duration, hooks ...Hook) *Store {
	return newStore(cm.DB(), cm.Dialect(), timeout, hooks...)
}

func newStore(db *sql.DB, dialect Dialect, timeout time.Duration, hooks ...Hook) *Store {
	chain := make(hookChain, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			chain = append(chain, h)
		}
	}
	return &Store{
		db:      db,
		dialect: dialect,
		timeout: timeout,
		hooks:   chain,
	}
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) begin(ctx context.Context, stmt Statement) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	ctx = s.hooks.before(ctx, stmt)
	start := time.Now()

	return ctx, func(err error) {
		s.hooks.after(ctx, stmt, time.Since(start), err)
		cancel()
	}
}

// Query runs a row-returning statement and calls scan once per row.
func (s *Store) Query(ctx context.Context, stmt Statement, scan func(*sql.Rows) error) (err error) {
	ctx, finish := s.begin(ctx, stmt)
	defer func() { finish(err) }()

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(stmt.Query), stmt.Args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err = scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// QueryRow scans the first row into dest. found is false when the statement
// matched nothing.
func (s *Store) QueryRow(ctx context.Context, stmt Statement, dest ...any) (found bool, err error) {
	ctx, finish := s.begin(ctx, stmt)
	defer func() { finish(err) }()

	err = s.db.QueryRowContext(ctx, s.dialect.Rebind(stmt.Query), stmt.Args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Exec runs a mutating statement and returns the number of affected rows.
func (s *Store) Exec(ctx context.Context, stmt Statement) (affected int64, err error) {
	ctx, finish := s.begin(ctx, stmt)
	defer func() { finish(err) }()

	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(stmt.Query), stmt.Args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Insert runs an INSERT and returns the generated id.
func (s *Store) Insert(ctx context.Context, stmt Statement) (id int64, err error) {
	ctx, finish := s.begin(ctx, stmt)
	defer func() { finish(err) }()

	if s.dialect.SupportsReturning() {
		query := s.dialect.Rebind(stmt.Query) + " RETURNING id"
		err = s.db.QueryRowContext(ctx, query, stmt.Args...).Scan(&id)
		return id, err
	}

	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(stmt.Query), stmt.Args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
