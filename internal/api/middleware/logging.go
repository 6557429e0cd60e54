package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"journalapi/pkg/logger"
)

// RequestLogger logs one line per request. Bodies are never logged since
// they may carry passwords.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log.Debug("Request received", map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			rw := wrapResponseWriter(w)
			next.ServeHTTP(rw, r)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"bytes":       rw.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}

			switch {
			case rw.statusCode >= 500:
				log.ErrorContext(r.Context(), "HTTP request", fields)
			case rw.statusCode >= 400:
				log.WarnContext(r.Context(), "HTTP request", fields)
			default:
				log.InfoContext(r.Context(), "HTTP request", fields)
			}
		})
	}
}
