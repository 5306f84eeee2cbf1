package yahoo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/yahoo"
)

// 2024-03-04, 2024-03-05 and 2024-03-06 at 14:30 UTC (US market open).
const chartBody = `{
	"chart": {
		"result": [{
			"meta": {"currency": "USD", "symbol": "AAPL", "exchangeName": "NMS"},
			"timestamp": [1709562600, 1709649000, 1709735400],
			"indicators": {"quote": [{"close": [175.1, null, 169.12]}]}
		}],
		"error": null
	}
}`

const notFoundBody = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *yahoo.FinanceClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return yahoo.NewFinanceClient(config.YahooConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
}

func TestFinanceClient_GetDailyCloses(t *testing.T) {
	from := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

	t.Run("parses closes and skips null entries", func(t *testing.T) {
		var gotPath, gotPeriod1, gotPeriod2 string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotPeriod1 = r.URL.Query().Get("period1")
			gotPeriod2 = r.URL.Query().Get("period2")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chartBody))
		})

		series, err := client.GetDailyCloses(context.Background(), "AAPL", from, to)

		require.NoError(t, err)
		assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
		assert.Equal(t, "1709510400", gotPeriod1)
		// WHY: period2 is exclusive on Yahoo's side, so the day after `to` is requested
		assert.Equal(t, "1709769600", gotPeriod2)
		assert.Equal(t, model.PriceSeries{
			{Date: from, Close: 175.1},
			{Date: to, Close: 169.12},
		}, series)
	})

	t.Run("maps unknown symbols to ErrSymbolNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(notFoundBody))
		})

		_, err := client.GetDailyCloses(context.Background(), "NOPE", from, to)

		assert.ErrorIs(t, err, apperrors.ErrSymbolNotFound)
	})

	t.Run("maps a not-found chart error on a 200 to ErrSymbolNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(notFoundBody))
		})

		_, err := client.GetDailyCloses(context.Background(), "NOPE", from, to)

		assert.ErrorIs(t, err, apperrors.ErrSymbolNotFound)
	})

	t.Run("maps a bare 404 to ErrSymbolNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetDailyCloses(context.Background(), "NOPE", from, to)

		assert.ErrorIs(t, err, apperrors.ErrSymbolNotFound)
	})

	t.Run("surfaces the chart error description", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input - start date cannot be after end date"}}}`))
		})

		_, err := client.GetDailyCloses(context.Background(), "AAPL", from, to)

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrSymbolNotFound)
		assert.Contains(t, err.Error(), "start date cannot be after end date")
	})

	t.Run("returns an error on server failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := client.GetDailyCloses(context.Background(), "AAPL", from, to)

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrSymbolNotFound)
	})
}

func TestParseChart(t *testing.T) {
	t.Run("empty result is reported as not found", func(t *testing.T) {
		_, err := yahoo.ParseChart(yahoo.Response{})

		assert.ErrorIs(t, err, apperrors.ErrSymbolNotFound)
	})
}
