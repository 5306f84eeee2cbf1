package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

func aggregationFixture() []model.AssetGrowth {
	return []model.AssetGrowth{
		{
			Symbol: "AAA",
			Points: []model.AssetGrowthPoint{
				point("2024-03-04", 10, 1000, 1100, 0, 100),
				point("2024-03-05", 0, 0, 0, 200, 200),
			},
		},
		{
			Symbol: "BBB",
			Points: []model.AssetGrowthPoint{
				point("2024-03-05", 5, 500, 450, -1, -51),
				point("2024-03-08", 5, 500, 520, -1, 19),
			},
		},
	}
}

func TestAggregatePortfolio(t *testing.T) {
	t.Run("carries points forward and keeps realized gains of closed assets", func(t *testing.T) {
		series := ledger.AggregatePortfolio(aggregationFixture(), 10000, mustDate("2024-03-12"), ledger.NewHolidayCalendar())

		wantDates := []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-11"}
		wantBalances := []float64{10100, 10149, 10149, 10149, 10219, 10219}

		require.Len(t, series, len(wantDates))
		for i := range series {
			assert.Equal(t, mustDate(wantDates[i]), series[i].Date)
			assert.Equal(t, wantBalances[i], series[i].TotalBalanceValue, wantDates[i])
		}

		assert.Equal(t, 1100.0, series[0].MarketTotalValue)
		assert.Equal(t, 1000.0, series[0].BreakEvenValue)
		assert.Equal(t, 450.0, series[1].MarketTotalValue)
		assert.Equal(t, 500.0, series[1].BreakEvenValue)
		assert.Equal(t, 520.0, series[4].MarketTotalValue)
	})

	t.Run("carries a terminal zero point across days no other asset covers", func(t *testing.T) {
		assets := []model.AssetGrowth{
			{
				Symbol: "AAA",
				Points: []model.AssetGrowthPoint{
					point("2024-03-04", 10, 1000, 1100, 0, 100),
					point("2024-03-05", 0, 0, 0, 200, 200),
				},
			},
			{
				Symbol: "BBB",
				Points: []model.AssetGrowthPoint{
					point("2024-03-08", 5, 500, 520, -1, 19),
				},
			},
		}

		series := ledger.AggregatePortfolio(assets, 10000, mustDate("2024-03-12"), ledger.NewHolidayCalendar())

		wantDates := []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-11"}
		wantBalances := []float64{10100, 10200, 10200, 10200, 10219, 10219}

		require.Len(t, series, len(wantDates))
		for i := range series {
			assert.Equal(t, mustDate(wantDates[i]), series[i].Date)
			assert.Equal(t, wantBalances[i], series[i].TotalBalanceValue, wantDates[i])
		}

		// Only the closed asset contributes on 03-06 and 03-07
		assert.Equal(t, 0.0, series[2].MarketTotalValue)
		assert.Equal(t, 0.0, series[2].BreakEvenValue)
		assert.Equal(t, 520.0, series[4].MarketTotalValue)
	})

	t.Run("skips calendar holidays", func(t *testing.T) {
		cal := ledger.NewHolidayCalendar(mustDate("2024-03-06"))

		series := ledger.AggregatePortfolio(aggregationFixture(), 10000, mustDate("2024-03-12"), cal)

		require.Len(t, series, 5)
		for _, p := range series {
			assert.NotEqual(t, mustDate("2024-03-06"), p.Date)
		}
	})

	t.Run("stops the day before today", func(t *testing.T) {
		series := ledger.AggregatePortfolio(aggregationFixture(), 10000, mustDate("2024-03-06"), ledger.NewHolidayCalendar())

		require.Len(t, series, 2)
		assert.Equal(t, mustDate("2024-03-05"), series[1].Date)
	})

	t.Run("no assets yields an empty series", func(t *testing.T) {
		series := ledger.AggregatePortfolio(nil, 10000, mustDate("2024-03-12"), nil)

		assert.NotNil(t, series)
		assert.Empty(t, series)
	})

	t.Run("nil calendar defaults to NYSE", func(t *testing.T) {
		assets := []model.AssetGrowth{{
			Symbol: "AAA",
			Points: []model.AssetGrowthPoint{point("2024-03-28", 1, 100, 100, 0, 0)},
		}}

		series := ledger.AggregatePortfolio(assets, 0, mustDate("2024-04-02"), nil)

		require.Len(t, series, 2)
		assert.Equal(t, mustDate("2024-03-28"), series[0].Date)
		assert.Equal(t, mustDate("2024-04-01"), series[1].Date)
	})
}
