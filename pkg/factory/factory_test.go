package factory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"journalapi/internal/config"
	"journalapi/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		AppEnv: "test",
		Server: config.ServerConfig{Port: "0", Timeout: 5 * time.Second},
		Database: config.DatabaseConfig{
			URL:          "sqlite://" + filepath.Join(t.TempDir(), "journal.db"),
			QueryTimeout: 2 * time.Second,
			AutoMigrate:  true,
			FailFast:     true,
		},
		Tracing:  config.TracingConfig{ServiceName: "journalapi-test"},
		LogLevel: "error",
	}
}

func newTestApp(t *testing.T) (*AppFactory, http.Handler) {
	t.Helper()

	app, err := Build(context.Background(), testConfig(t), logger.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close(context.Background()) })

	return app, app.Handler()
}

func request(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestUsers_EmptyListIsArray(t *testing.T) {
	_, h := newTestApp(t)

	for _, path := range []string{"/users", "/journals"} {
		rec := request(t, h, http.MethodGet, path, "")
		if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Fatalf("%s: unexpected response %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

func TestUsers_CreateFetchRoundTrip(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodPost, "/users", `{"fname":"Ada","lname":"L","username":"ada","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %q", rec.Code, rec.Body.String())
	}
	id := decode(t, rec)["id"].(float64)

	rec = request(t, h, http.MethodGet, "/users/"+jsonNumber(id), "")
	got := decode(t, rec)
	if got["id"] != id || got["fname"] != "Ada" || got["username"] != "ada" || got["password"] != "pw" {
		t.Fatalf("unexpected user: %v", got)
	}

	rec = request(t, h, http.MethodGet, "/users", "")
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list: %q %v", rec.Body.String(), err)
	}
}

func TestUsers_MissingIDReturnsEmptyObject(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodGet, "/users/9999", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestUsers_UpdateOverwritesOmittedFieldsWithNull(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodPost, "/users", `{"fname":"Ada","lname":"L","username":"ada","password":"pw"}`)
	id := jsonNumber(decode(t, rec)["id"].(float64))

	rec = request(t, h, http.MethodPut, "/users", `{"id":`+id+`,"fname":"Grace"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "User updated successfully." {
		t.Fatalf("update: %d %q", rec.Code, rec.Body.String())
	}

	got := decode(t, request(t, h, http.MethodGet, "/users/"+id, ""))
	if got["fname"] != "Grace" {
		t.Fatalf("fname not updated: %v", got)
	}
	for _, key := range []string{"lname", "username", "password"} {
		if got[key] != nil {
			t.Fatalf("expected %s to be null, got %v", key, got[key])
		}
	}

	// A missing target still reports success.
	rec = request(t, h, http.MethodPut, "/users", `{"id":9999,"fname":"X"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update missing: %d", rec.Code)
	}
}

func TestUsers_DeleteIsIdempotent(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodPost, "/users", `{"username":"ada","password":"pw"}`)
	id := jsonNumber(decode(t, rec)["id"].(float64))

	for i := 0; i < 2; i++ {
		rec = request(t, h, http.MethodDelete, "/users", `{"id":`+id+`}`)
		if rec.Code != http.StatusOK || rec.Body.String() != "User deleted successfully." {
			t.Fatalf("delete #%d: %d %q", i+1, rec.Code, rec.Body.String())
		}
	}

	rec = request(t, h, http.MethodGet, "/users/"+id, "")
	if strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("user still present: %q", rec.Body.String())
	}
}

func TestLogin_AgainstStore(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodPost, "/users", `{"fname":"A","username":"ab","password":"pw"}`)
	id := decode(t, rec)["id"].(float64)

	rec = request(t, h, http.MethodPost, "/login", `{"username":"ab","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %q", rec.Code, rec.Body.String())
	}
	got := decode(t, rec)
	if got["id"] != id || got["username"] != "ab" || got["message"] != "Login successful" {
		t.Fatalf("unexpected login body: %v", got)
	}

	rec = request(t, h, http.MethodPost, "/login", `{"username":"ab","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized || rec.Body.String() != "Invalid credentials" {
		t.Fatalf("wrong password: %d %q", rec.Code, rec.Body.String())
	}

	rec = request(t, h, http.MethodPost, "/login", `{"username":"ab"}`)
	if rec.Code != http.StatusBadRequest || rec.Body.String() != "Username and password are required" {
		t.Fatalf("missing password: %d %q", rec.Code, rec.Body.String())
	}
}

func TestJournals_CRUD(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodPost, "/journals", `{"userId":1,"title":"Day 1","content":"hello","created_at":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %q", rec.Code, rec.Body.String())
	}
	id := jsonNumber(decode(t, rec)["id"].(float64))

	got := decode(t, request(t, h, http.MethodGet, "/journals/"+id, ""))
	if got["userId"] != float64(1) || got["title"] != "Day 1" || got["created_at"] != "2024-01-01" {
		t.Fatalf("unexpected journal: %v", got)
	}

	rec = request(t, h, http.MethodPut, "/journals", `{"id":`+id+`,"userId":1,"title":"Day 2"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "Journal updated successfully." {
		t.Fatalf("update: %d %q", rec.Code, rec.Body.String())
	}

	got = decode(t, request(t, h, http.MethodGet, "/journals/"+id, ""))
	if got["title"] != "Day 2" || got["userId"] != float64(1) {
		t.Fatalf("unexpected journal after update: %v", got)
	}
	if got["content"] != nil || got["created_at"] != nil {
		t.Fatalf("expected omitted fields to be null after update: %v", got)
	}

	rec = request(t, h, http.MethodDelete, "/journals", `{"id":"`+id+`"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "Journal deleted successfully." {
		t.Fatalf("delete: %d %q", rec.Code, rec.Body.String())
	}

	rec = request(t, h, http.MethodDelete, "/journals", `{"id":9999}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "Journal deleted successfully." {
		t.Fatalf("delete missing: %d %q", rec.Code, rec.Body.String())
	}
}

func TestJournals_CreatedAtRoundTripsAsSupplied(t *testing.T) {
	_, h := newTestApp(t)

	tests := []struct {
		name, raw, want string
	}{
		{"free text", `"next tuesday-ish"`, "next tuesday-ish"},
		{"epoch number", `1700000000`, "1700000000"},
		{"iso timestamp", `"2024-01-01T10:00:00+02:00"`, "2024-01-01T10:00:00+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, h, http.MethodPost, "/journals", `{"userId":1,"title":"t","content":"c","created_at":`+tt.raw+`}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("create: %d %q", rec.Code, rec.Body.String())
			}
			id := jsonNumber(decode(t, rec)["id"].(float64))

			got := decode(t, request(t, h, http.MethodGet, "/journals/"+id, ""))
			if got["created_at"] != tt.want {
				t.Fatalf("expected created_at %q, got %v", tt.want, got["created_at"])
			}
		})
	}
}

func TestUsers_ScalarFieldsStoredAsText(t *testing.T) {
	_, h := newTestApp(t)

	rec := request(t, h, http.MethodPost, "/users", `{"fname":42,"lname":"L","username":"n42","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %q", rec.Code, rec.Body.String())
	}
	id := jsonNumber(decode(t, rec)["id"].(float64))

	got := decode(t, request(t, h, http.MethodGet, "/users/"+id, ""))
	if got["fname"] != "42" {
		t.Fatalf("expected fname \"42\", got %v", got["fname"])
	}

	rec = request(t, h, http.MethodPost, "/users", `{"fname":{"first":"A"}}`)
	if rec.Code != http.StatusBadRequest || rec.Body.String() != "Invalid request body" {
		t.Fatalf("object field: %d %q", rec.Code, rec.Body.String())
	}
}

func TestStoreUnavailable_Returns500(t *testing.T) {
	app, h := newTestApp(t)

	if err := app.GetConnectionManager().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rec := request(t, h, http.MethodGet, "/users", "")
	if rec.Code != http.StatusInternalServerError || rec.Body.String() != "Error fetching users." {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rec = request(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("health: expected 503, got %d", rec.Code)
	}
}

func TestBuild_FailFastOnUnreachableStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "missing", "dir", "journal.db")

	if _, err := Build(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatal("expected an error for an unreachable store")
	}

	cfg.Database.FailFast = false
	app, err := Build(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("expected startup to continue without the store: %v", err)
	}
	_ = app.Close(context.Background())
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
