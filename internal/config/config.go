package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	Server   ServerConfig
	Database DatabaseConfig
	Tracing  TracingConfig
	LogLevel string
}

type ServerConfig struct {
	Port    string
	Timeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
	AutoMigrate     bool
	FailFast        bool
}

type TracingConfig struct {
	ServiceName  string
	OTLPEndpoint string
}

// Load reads the process environment, optionally seeded from a .env file in
// the working directory. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env file could not be loaded: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("SERVER_TIMEOUT", 15*time.Second)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_QUERY_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_FAIL_FAST", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OTEL_SERVICE_NAME", "journalapi")

	var cfg Config

	cfg.AppEnv = v.GetString("APP_ENV")
	cfg.Server.Port = v.GetString("PORT")
	cfg.Server.Timeout = v.GetDuration("SERVER_TIMEOUT")

	cfg.Database.URL = v.GetString("DATABASE_URL")
	cfg.Database.Driver = v.GetString("DB_DRIVER")
	cfg.Database.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	cfg.Database.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	cfg.Database.ConnMaxLifetime = v.GetDuration("DB_CONN_MAX_LIFETIME")
	cfg.Database.QueryTimeout = v.GetDuration("DB_QUERY_TIMEOUT")
	cfg.Database.AutoMigrate = v.GetBool("DB_AUTO_MIGRATE")
	cfg.Database.FailFast = v.GetBool("DB_FAIL_FAST")

	cfg.Tracing.ServiceName = v.GetString("OTEL_SERVICE_NAME")
	cfg.Tracing.OTLPEndpoint = v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")

	cfg.LogLevel = v.GetString("LOG_LEVEL")

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return &cfg, nil
}

// IsDevelopment reports whether the service runs with developer-friendly output.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
