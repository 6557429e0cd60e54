package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"journalapi/pkg/logger"
	"journalapi/pkg/metrics"
)

func newRouter(log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Use(RequestLogger(log))
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	})
	return r
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	h := newRouter(logger.Nop())
	counter := metrics.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/users/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/users/1", "/users/2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("expected 2 requests under the route pattern, got %v", got)
	}
}

func TestRequestLogger_WritesStatusAndSize(t *testing.T) {
	var buf bytes.Buffer
	h := newRouter(logger.New(logger.InfoLevel, "test", &buf))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/5", strings.NewReader(`{"password":"secret"}`)))

	if strings.Contains(buf.String(), "secret") {
		t.Fatal("request body must not be logged")
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if line["status"] != float64(http.StatusTeapot) || line["bytes"] != float64(5) || line["path"] != "/users/5" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
