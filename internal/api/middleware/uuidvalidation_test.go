package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/response"
)

// accountRouter mounts the middleware the way the API does: on the /{uuid} subtree of
// /api/account, in front of the per-account routes.
func accountRouter(seen *string) http.Handler {
	record := func(w http.ResponseWriter, r *http.Request) {
		*seen = chi.URLParam(r, "uuid")
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Route("/api/account", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
		r.Route("/{uuid}", func(r chi.Router) {
			r.Use(middleware.ValidateUUIDMiddleware)
			r.Get("/", record)
			r.Get("/holdings", record)
			r.Get("/growth", record)
			r.Post("/transactions", record)
		})
	})
	return r
}

// TestValidateUUIDMiddleware tests account ID validation on the account routes.
//
// WHY: Every per-account handler trusts the {uuid} parameter. A malformed ID must be
// turned away with 400 before it reaches a handler or a query.
func TestValidateUUIDMiddleware(t *testing.T) {
	const accountID = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantSeen   string
	}{
		{"account", http.MethodGet, "/api/account/" + accountID + "/", http.StatusOK, accountID},
		{"holdings", http.MethodGet, "/api/account/" + accountID + "/holdings", http.StatusOK, accountID},
		{"growth", http.MethodGet, "/api/account/" + accountID + "/growth", http.StatusOK, accountID},
		{"create transaction", http.MethodPost, "/api/account/" + accountID + "/transactions", http.StatusOK, accountID},
		{"malformed id", http.MethodGet, "/api/account/not-a-uuid/holdings", http.StatusBadRequest, ""},
		{"truncated id", http.MethodGet, "/api/account/550e8400-e29b-41d4/growth", http.StatusBadRequest, ""},
		{"listing is not guarded", http.MethodGet, "/api/account/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			accountRouter(&seen).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if seen != tt.wantSeen {
				t.Errorf("Expected handler to see %q, got %q", tt.wantSeen, seen)
			}
		})
	}

	t.Run("rejection carries an error body", func(t *testing.T) {
		var seen string
		req := httptest.NewRequest(http.MethodGet, "/api/account/not-a-uuid/", nil)
		w := httptest.NewRecorder()

		accountRouter(&seen).ServeHTTP(w, req)

		var body response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode error body: %v", err)
		}
		if body.Error != "invalid UUID format" {
			t.Errorf("Expected error %q, got %q", "invalid UUID format", body.Error)
		}
	})
}
