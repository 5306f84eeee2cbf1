package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/testutil"
)

func TestPriceService_LoadSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches uncached symbols and caches them", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockPriceProvider().
			WithSeries("AAPL", testutil.Closes("2024-03-04", 100.0, "2024-03-05", 110.0, "2024-03-06", 105.0))
		svc := testutil.NewTestPriceService(t, db, provider)

		series, err := svc.LoadSeries(ctx,
			map[string]time.Time{"AAPL": testutil.MustDate("2024-03-04")},
			testutil.MustDate("2024-03-06"),
		)

		require.NoError(t, err)
		require.Len(t, series["AAPL"], 3)
		assert.Equal(t, 110.0, series["AAPL"][1].Close)
		testutil.AssertRowCount(t, db, "price", 3)

		_, err = svc.LoadSeries(ctx,
			map[string]time.Time{"AAPL": testutil.MustDate("2024-03-04")},
			testutil.MustDate("2024-03-06"),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, provider.CallCount("AAPL"), "covered range is served from cache")
	})

	t.Run("fetches only the uncovered tail", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreatePrices(t, db, "AAPL", testutil.Closes("2024-03-04", 100.0, "2024-03-05", 110.0))
		provider := testutil.NewMockPriceProvider().
			WithSeries("AAPL", testutil.Closes("2024-03-04", 1.0, "2024-03-05", 1.0, "2024-03-06", 105.0))
		svc := testutil.NewTestPriceService(t, db, provider)

		series, err := svc.LoadSeries(ctx,
			map[string]time.Time{"AAPL": testutil.MustDate("2024-03-04")},
			testutil.MustDate("2024-03-06"),
		)

		require.NoError(t, err)
		require.Len(t, series["AAPL"], 3)
		assert.Equal(t, 100.0, series["AAPL"][0].Close, "cached closes are not overwritten")
		assert.Equal(t, 105.0, series["AAPL"][2].Close)

		calls := provider.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, testutil.MustDate("2024-03-06"), calls[0].From)
	})

	t.Run("failed symbol does not fail siblings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockPriceProvider().
			WithSeries("AAPL", testutil.Closes("2024-03-04", 100.0)).
			WithError("MSFT", errors.New("upstream unavailable"))
		svc := testutil.NewTestPriceService(t, db, provider)

		series, err := svc.LoadSeries(ctx,
			map[string]time.Time{
				"AAPL": testutil.MustDate("2024-03-04"),
				"MSFT": testutil.MustDate("2024-03-04"),
				"XXXX": testutil.MustDate("2024-03-04"),
			},
			testutil.MustDate("2024-03-06"),
		)

		require.NoError(t, err)
		assert.Len(t, series["AAPL"], 1)
		assert.NotContains(t, series, "MSFT")
		assert.NotContains(t, series, "XXXX")
	})

	t.Run("serves the cache when the provider fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreatePrices(t, db, "AAPL", testutil.Closes("2024-03-04", 100.0))
		provider := testutil.NewMockPriceProvider().WithError("AAPL", errors.New("timeout"))
		svc := testutil.NewTestPriceService(t, db, provider)

		series, err := svc.LoadSeries(ctx,
			map[string]time.Time{"AAPL": testutil.MustDate("2024-03-04")},
			testutil.MustDate("2024-03-06"),
		)

		require.NoError(t, err)
		assert.Len(t, series["AAPL"], 1)
	})

	t.Run("returns context errors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db, testutil.NewMockPriceProvider())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.LoadSeries(cancelled,
			map[string]time.Time{"AAPL": testutil.MustDate("2024-03-04")},
			testutil.MustDate("2024-03-06"),
		)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPriceService_RefreshAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Build(t, db)
	testutil.NewTransaction(account.ID).WithDate("2024-03-05").Build(t, db)
	testutil.NewTransaction(account.ID).WithSymbol("MSFT").WithDate("2024-03-04").Build(t, db)

	provider := testutil.NewMockPriceProvider().
		WithSeries("AAPL", testutil.Closes("2024-03-04", 99.0, "2024-03-05", 100.0, "2024-03-06", 101.0, "2024-03-07", 102.0))
	svc := testutil.NewTestPriceService(t, db, provider)

	resp, err := svc.RefreshAll(context.Background(), testutil.MustDate("2024-03-07"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.UpdatedSymbols, 1)
	assert.Equal(t, "AAPL", resp.UpdatedSymbols[0].Symbol)
	assert.Equal(t, 2, resp.UpdatedSymbols[0].PricesAdded, "from first trade through yesterday")
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "MSFT", resp.Errors[0].Symbol)
}
