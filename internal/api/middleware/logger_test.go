package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := chimiddleware.RequestID(middleware.Logger(next))

	req := httptest.NewRequest(http.MethodGet, "/api/account/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status to pass through, got %d", w.Code)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["path"] != "/api/account/" {
		t.Errorf("Expected path /api/account/, got %v", entry["path"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("Expected status 418, got %v", entry["status"])
	}
	if entry["requestId"] == "" || entry["requestId"] == nil {
		t.Error("Expected request id to be logged")
	}
}
