package factory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"journalapi/internal/api"
	"journalapi/internal/config"
	migrations "journalapi/internal/database"
	"journalapi/internal/domain"
	"journalapi/internal/repository"
	"journalapi/internal/service"
	"journalapi/pkg/database"
	"journalapi/pkg/logger"
	"journalapi/pkg/tracing"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetConnectionManager() *database.ConnectionManager
	GetStore() *database.Store

	GetUserRepository() domain.UserRepository
	GetJournalRepository() domain.JournalRepository

	GetUserService() domain.UserService
	GetJournalService() domain.JournalService
	GetAuthService() domain.AuthService

	Handler() http.Handler
	Close(ctx context.Context) error
}

type AppFactory struct {
	config            *config.Config
	logger            logger.Logger
	connectionManager *database.ConnectionManager
	store             *database.Store
	shutdownTracing   tracing.ShutdownFunc

	userRepository    domain.UserRepository
	journalRepository domain.JournalRepository

	userService    domain.UserService
	journalService domain.JournalService
	authService    domain.AuthService
}

// NewFactory loads configuration from the environment and builds the
// application graph.
func NewFactory(ctx context.Context) (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), cfg.AppEnv, os.Stdout)
	return Build(ctx, cfg, log)
}

// Build wires the application from an already loaded configuration. A failed
// initial ping is only fatal when Database.FailFast is set; otherwise the
// service starts and each request reports store errors on its own.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*AppFactory, error) {
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("tracing could not be initialised: %w", err)
	}

	cm, err := database.NewConnectionManager(cfg.Database, log)
	if err != nil {
		shutdownTracing(ctx)
		return nil, fmt.Errorf("database connection could not be configured: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := cm.Ping(pingCtx); err != nil {
		if cfg.Database.FailFast {
			cm.Close()
			shutdownTracing(ctx)
			return nil, fmt.Errorf("database is unreachable: %w", err)
		}
		log.Warn("Database is unreachable, continuing without it", map[string]interface{}{"error": err.Error()})
	} else if cfg.Database.AutoMigrate {
		if err := migrations.NewMigrationService(cm.DB(), cm.Dialect(), log).RunMigrations(ctx); err != nil {
			cm.Close()
			shutdownTracing(ctx)
			return nil, fmt.Errorf("migrations could not be applied: %w", err)
		}
	}

	store := database.NewStore(cm, cfg.Database.QueryTimeout,
		database.TracingHook{},
		database.MetricsHook{},
		database.LogHook{Logger: log, SlowThreshold: 500 * time.Millisecond},
	)

	factory := &AppFactory{
		config:            cfg,
		logger:            log,
		connectionManager: cm,
		store:             store,
		shutdownTracing:   shutdownTracing,
	}

	factory.initRepositories()
	factory.initServices()

	return factory, nil
}

func (f *AppFactory) initRepositories() {
	f.userRepository = repository.NewUserRepository(f.store, f.logger)
	f.journalRepository = repository.NewJournalRepository(f.store, f.logger)
}

func (f *AppFactory) initServices() {
	f.userService = service.NewUserService(f.userRepository, f.logger)
	f.journalService = service.NewJournalService(f.journalRepository, f.logger)
	f.authService = service.NewAuthService(f.userRepository, f.logger)
}

func (f *AppFactory) Handler() http.Handler {
	return api.NewRouter(api.Services{
		Users:    f.userService,
		Journals: f.journalService,
		Auth:     f.authService,
		Store:    f.connectionManager,
	}, f.logger)
}

// Close flushes pending spans and releases the connection pool.
func (f *AppFactory) Close(ctx context.Context) error {
	return errors.Join(
		f.shutdownTracing(ctx),
		f.connectionManager.Close(),
	)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetConnectionManager() *database.ConnectionManager {
	return f.connectionManager
}

func (f *AppFactory) GetStore() *database.Store {
	return f.store
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetJournalRepository() domain.JournalRepository {
	return f.journalRepository
}

func (f *AppFactory) GetUserService() domain.UserService {
	return f.userService
}

func (f *AppFactory) GetJournalService() domain.JournalService {
	return f.journalService
}

func (f *AppFactory) GetAuthService() domain.AuthService {
	return f.authService
}
