package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"journalapi/internal/config"
	"journalapi/pkg/logger"
)

// ConnectionManager owns the process-wide connection pool. It is created once
// at startup and closed at shutdown; every request borrows from the pool.
type ConnectionManager struct {
	db      *sql.DB
	dialect Dialect
	logger  logger.Logger
}

// NewConnectionManager opens the pool without contacting the server. Call
// Ping to verify connectivity.
func NewConnectionManager(cfg config.DatabaseConfig, log logger.Logger) (*ConnectionManager, error) {
	dialect, dsn, err := ResolveDSN(cfg.URL, cfg.Driver)
	if err != nil {
		return nil, err
	}

	if ignored := IgnoredURLParams(cfg.URL); len(ignored) > 0 {
		log.Warn("Ignoring unsupported DATABASE_URL parameters", map[string]interface{}{"params": ignored})
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("database pool could not be opened: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info("Database pool opened", map[string]interface{}{
		"driver":         string(dialect),
		"max_open_conns": cfg.MaxOpenConns,
	})

	return &ConnectionManager{
		db:      db,
		dialect: dialect,
		logger:  log,
	}, nil
}

func (cm *ConnectionManager) DB() *sql.DB {
	return cm.db
}

func (cm *ConnectionManager) Dialect() Dialect {
	return cm.dialect
}

func (cm *ConnectionManager) Ping(ctx context.Context) error {
	return cm.db.PingContext(ctx)
}

func (cm *ConnectionManager) GetStats() map[string]interface{} {
	stats := cm.db.Stats()
	return map[string]interface{}{
		"driver":           string(cm.dialect),
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
	}
}

func (cm *ConnectionManager) Close() error {
	cm.logger.Info("Closing database pool", map[string]interface{}{})
	return cm.db.Close()
}
