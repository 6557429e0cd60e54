package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "journalapi/pkg/database"
	"journalapi/pkg/logger"
)

// MigrationService creates the users and journals tables when they are
// missing. It is a bootstrap for local and test databases, enabled with
// DB_AUTO_MIGRATE; production schemas are owned outside the service.
type MigrationService struct {
	db      *sql.DB
	dialect dbpkg.Dialect
	logger  logger.Logger
}

type migration struct {
	Name string
	DDL  map[dbpkg.Dialect]string
}

var migrations = []migration{
	{
		Name: "create_users_table",
		DDL: map[dbpkg.Dialect]string{
			dbpkg.MySQL: `CREATE TABLE IF NOT EXISTS users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				fname VARCHAR(255),
				lname VARCHAR(255),
				username VARCHAR(255),
				password VARCHAR(255)
			)`,
			dbpkg.Postgres: `CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				fname TEXT,
				lname TEXT,
				username TEXT,
				password TEXT
			)`,
			dbpkg.SQLite: `CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				fname TEXT,
				lname TEXT,
				username TEXT,
				password TEXT
			)`,
		},
	},
	{
		Name: "create_journals_table",
		DDL: map[dbpkg.Dialect]string{
			dbpkg.MySQL: `CREATE TABLE IF NOT EXISTS journals (
				id INT AUTO_INCREMENT PRIMARY KEY,
				userId INT,
				title VARCHAR(255),
				content TEXT,
				created_at VARCHAR(64)
			)`,
			dbpkg.Postgres: `CREATE TABLE IF NOT EXISTS journals (
				id SERIAL PRIMARY KEY,
				userId INTEGER,
				title TEXT,
				content TEXT,
				created_at TEXT
			)`,
			dbpkg.SQLite: `CREATE TABLE IF NOT EXISTS journals (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				userId INTEGER,
				title TEXT,
				content TEXT,
				created_at TEXT
			)`,
		},
	},
}

func NewMigrationService(db *sql.DB, dialect dbpkg.Dialect, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

func (m *MigrationService) InitMigrationTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS schema_migrations (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		m.logger.Error("Migration table could not be created", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(ctx context.Context, name string) (bool, error) {
	var count int
	query := m.dialect.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
	if err := m.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		m.logger.Error("Migration state could not be checked", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

func (m *MigrationService) ApplyMigration(ctx context.Context, mig migration) (err error) {
	applied, err := m.IsMigrationApplied(ctx, mig.Name)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug("Migration already applied", map[string]interface{}{"name": mig.Name})
		return nil
	}

	ddl, ok := mig.DDL[m.dialect]
	if !ok {
		return fmt.Errorf("migration %s has no DDL for %s", mig.Name, m.dialect)
	}

	m.logger.Info("Applying migration", map[string]interface{}{"name": mig.Name})

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			m.logger.Error("Migration rolled back", map[string]interface{}{"name": mig.Name, "error": err.Error()})
		}
	}()

	if _, err = tx.ExecContext(ctx, ddl); err != nil {
		return err
	}

	record := m.dialect.Rebind(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`)
	if _, err = tx.ExecContext(ctx, record, mig.Name, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

func (m *MigrationService) RunMigrations(ctx context.Context) error {
	if err := m.InitMigrationTable(ctx); err != nil {
		return fmt.Errorf("migration table could not be created: %w", err)
	}

	for _, mig := range migrations {
		if err := m.ApplyMigration(ctx, mig); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.Name, err)
		}
	}

	return nil
}
