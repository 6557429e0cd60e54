package api

import (
	"context"
	"net/http"
	"time"

	"journalapi/pkg/logger"
)

// Pinger is satisfied by the database connection manager.
type Pinger interface {
	Ping(ctx context.Context) error
	GetStats() map[string]interface{}
}

type HealthHandler struct {
	store  Pinger
	logger logger.Logger
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
	Version   string                 `json:"version"`
}

func NewHealthHandler(store Pinger, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	database := h.checkDatabaseHealth(r.Context())

	status := "healthy"
	code := http.StatusOK
	if database["status"] != "healthy" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  map[string]interface{}{"database": database},
		Version:   "1.0.0",
	})
}

func (h *HealthHandler) checkDatabaseHealth(ctx context.Context) map[string]interface{} {
	if h.store == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "database connection is nil",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Database ping failed", map[string]interface{}{"error": err.Error()})
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "unreachable",
		}
	}

	result := map[string]interface{}{"status": "healthy"}
	for k, v := range h.store.GetStats() {
		result[k] = v
	}
	return result
}
