package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"journalapi/internal/api/middleware"
	"journalapi/internal/domain"
	"journalapi/pkg/logger"
)

const welcomeMessage = "Welcome to Your Personal Journal API!"

// Services groups what the router needs to serve requests.
type Services struct {
	Users    domain.UserService
	Journals domain.JournalService
	Auth     domain.AuthService
	Store    Pinger
}

func NewRouter(svc Services, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id", "X-Trace-ID"},
		MaxAge:         300,
	}))
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger(log))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, welcomeMessage)
	})

	NewUserHandler(svc.Users, log).RegisterRoutes(r)
	NewJournalHandler(svc.Journals, log).RegisterRoutes(r)
	NewAuthHandler(svc.Auth, log).RegisterRoutes(r)

	r.Get("/health", NewHealthHandler(svc.Store, log).HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
