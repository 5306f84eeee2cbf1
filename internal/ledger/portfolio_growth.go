package ledger

import (
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// AggregatePortfolio merges per-asset growth series into one whole-portfolio series.
//
// The date axis runs from the earliest asset point through the day before today
// (only completed days are reported) and skips days the calendar marks as closed.
// On each axis day every asset contributes its most recent point on or before that day,
// so a series that has ended keeps carrying its last point forward and a series that has
// not started yet contributes nothing.
//
// For each day:
//   - MarketTotalValue = Σ marketTotal
//   - BreakEvenValue = Σ investedTotal
//   - TotalBalanceValue = startingCash + Σ(marketTotal - investedTotal) + Σ accumulatedReturn
//
// The accumulated return is taken from the carried point of every asset, including closed
// ones, so realized gains stay in the balance after a position is fully sold.
//
// Returns an ascending series with every figure rounded to 2 decimals. A nil calendar
// defaults to NYSECalendar.
func AggregatePortfolio(assets []model.AssetGrowth, startingCash float64, today time.Time, cal Calendar) []model.PortfolioGrowthPoint {
	if cal == nil {
		cal = NYSECalendar{}
	}

	start, ok := earliestPoint(assets)
	if !ok {
		return []model.PortfolioGrowthPoint{}
	}
	end := Day(today).AddDate(0, 0, -1)

	// cursors[i] is the index of the latest point of assets[i] on or before the current day.
	cursors := make([]int, len(assets))
	for i := range cursors {
		cursors[i] = -1
	}

	series := make([]model.PortfolioGrowthPoint, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !cal.IsTradingDay(day) {
			continue
		}

		var market, invested, unrealized, realized float64
		for i, asset := range assets {
			for cursors[i]+1 < len(asset.Points) && !asset.Points[cursors[i]+1].Date.After(day) {
				cursors[i]++
			}
			if cursors[i] < 0 {
				continue
			}

			p := asset.Points[cursors[i]]
			market += p.MarketTotal
			invested += p.InvestedTotal
			unrealized += p.MarketTotal - p.InvestedTotal
			realized += p.AccumulatedReturn
		}

		series = append(series, model.PortfolioGrowthPoint{
			Date:              day,
			BreakEvenValue:    roundMoney(invested),
			MarketTotalValue:  roundMoney(market),
			TotalBalanceValue: roundMoney(startingCash + unrealized + realized),
		})
	}

	return series
}

// earliestPoint returns the first date found across all asset series.
func earliestPoint(assets []model.AssetGrowth) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, asset := range assets {
		if len(asset.Points) == 0 {
			continue
		}
		first := Day(asset.Points[0].Date)
		if !found || first.Before(earliest) {
			earliest = first
			found = true
		}
	}
	return earliest, found
}
