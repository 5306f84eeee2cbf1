package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/testutil"
)

func setupGrowthHandler(t *testing.T) (*GrowthHandler, model.Account) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().WithStartingCash(1000).Build(t, db)
	testutil.NewTransaction(account.ID).WithDate("2024-03-04").WithUnits(10).WithUnitPrice(100).Build(t, db)

	provider := testutil.NewMockPriceProvider().
		WithSeries("AAPL", testutil.Closes("2024-03-04", 100.0, "2024-03-05", 110.0, "2024-03-06", 105.0))

	handler := NewGrowthHandler(testutil.NewTestGrowthService(t, db, provider, ledger.NewHolidayCalendar()))
	handler.now = func() time.Time { return time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC) }

	return handler, account
}

func growthRequest(path, accountID string, query map[string]string) *http.Request {
	return testutil.WithURLParams(
		testutil.NewRequestWithQueryParams(http.MethodGet, path, query),
		map[string]string{"uuid": accountID},
	)
}

func TestGrowthHandler_Growth(t *testing.T) {
	t.Run("returns asset and portfolio series through yesterday", func(t *testing.T) {
		handler, account := setupGrowthHandler(t)
		w := httptest.NewRecorder()

		handler.Growth(w, growthRequest("/api/account/"+account.ID+"/growth", account.ID, nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result ledger.GrowthResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		require.Len(t, result.Assets, 1)
		require.Len(t, result.Portfolio, 3)
		assert.Equal(t, 1050.0, result.Portfolio[2].TotalBalanceValue)
	})

	t.Run("honours the today parameter", func(t *testing.T) {
		handler, account := setupGrowthHandler(t)
		w := httptest.NewRecorder()

		handler.Growth(w, growthRequest("/api/account/"+account.ID+"/growth", account.ID,
			map[string]string{"today": "2024-03-06"}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result ledger.GrowthResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.Len(t, result.Portfolio, 2)
	})

	t.Run("returns 400 on malformed today", func(t *testing.T) {
		handler, account := setupGrowthHandler(t)
		w := httptest.NewRecorder()

		handler.Growth(w, growthRequest("/api/account/"+account.ID+"/growth", account.ID,
			map[string]string{"today": "yesterday"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 when account not found", func(t *testing.T) {
		handler, _ := setupGrowthHandler(t)
		id := testutil.MakeID()
		w := httptest.NewRecorder()

		handler.Growth(w, growthRequest("/api/account/"+id+"/growth", id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGrowthHandler_Changes(t *testing.T) {
	handler, account := setupGrowthHandler(t)
	w := httptest.NewRecorder()

	handler.Changes(w, growthRequest("/api/account/"+account.ID+"/changes", account.ID, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var windows map[string]*model.ChangeWindow
	require.NoError(t, json.NewDecoder(w.Body).Decode(&windows))
	require.Len(t, windows, len(model.WindowNames))

	require.NotNil(t, windows[model.WindowTotal])
	assert.Equal(t, 50.0, windows[model.WindowTotal].Value)

	value, present := windows[model.Window1Year]
	assert.True(t, present, "empty windows are encoded as null, not omitted")
	assert.Nil(t, value)
}
