package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/testutil"
)

func TestRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Build(t, db)

	router := api.NewRouter(api.Services{
		System:      testutil.NewTestSystemService(t, db),
		Account:     testutil.NewTestAccountService(t, db),
		Holdings:    testutil.NewTestHoldingsService(t, db),
		Transaction: testutil.NewTestTransactionService(t, db),
		Growth:      testutil.NewTestGrowthService(t, db, testutil.NewMockPriceProvider(), ledger.NewHolidayCalendar()),
	}, &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/api/system/health", "", http.StatusOK},
		{"version", http.MethodGet, "/api/system/version", "", http.StatusOK},
		{"accounts", http.MethodGet, "/api/account/", "", http.StatusOK},
		{"account", http.MethodGet, "/api/account/" + account.ID, "", http.StatusOK},
		{"invalid account id", http.MethodGet, "/api/account/not-a-uuid", "", http.StatusBadRequest},
		{"holdings", http.MethodGet, "/api/account/" + account.ID + "/holdings", "", http.StatusOK},
		{"transactions", http.MethodGet, "/api/account/" + account.ID + "/transactions", "", http.StatusOK},
		{
			"create transaction", http.MethodPost, "/api/account/" + account.ID + "/transactions",
			`{"symbol":"AAPL","date":"2024-03-04","type":"BUY","units":1,"unitPrice":100}`,
			http.StatusCreated,
		},
		{"growth", http.MethodGet, "/api/account/" + account.ID + "/growth?today=2024-03-07", "", http.StatusOK},
		{"changes", http.MethodGet, "/api/account/" + account.ID + "/changes?today=2024-03-07", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/portfolio", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}
