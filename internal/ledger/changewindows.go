package ledger

import (
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// lookback returns the target date of a calendar window relative to today.
// 1_day and total are resolved positionally and have no target date.
func lookback(window string, today time.Time) time.Time {
	today = Day(today)
	switch window {
	case model.Window1Week:
		return today.AddDate(0, 0, -7)
	case model.Window2Week:
		return today.AddDate(0, 0, -14)
	case model.Window3Week:
		return today.AddDate(0, 0, -21)
	case model.Window1Month:
		return today.AddDate(0, -1, 0)
	case model.Window3Month:
		return today.AddDate(0, -3, 0)
	case model.Window6Month:
		return today.AddDate(0, -6, 0)
	case model.Window1Year:
		return today.AddDate(-1, 0, 0)
	default:
		return today
	}
}

// ComputeChangeWindows reduces an ascending portfolio series to named lookback deltas.
//
// The reference is the totalBalanceValue of the most recent point. For each window the
// series is scanned from the newest point backwards for the first point dated on or
// before the lookback target; 1_day always uses the point just before the newest one and
// total always uses the oldest point. A window with no such point is nil.
//
// With fewer than 2 points every window is nil.
func ComputeChangeWindows(series []model.PortfolioGrowthPoint, today time.Time) model.ChangeWindows {
	windows := make(model.ChangeWindows, len(model.WindowNames))
	for _, name := range model.WindowNames {
		windows[name] = nil
	}
	if len(series) < 2 {
		return windows
	}

	last := len(series) - 1
	reference := series[last].TotalBalanceValue

	for _, name := range model.WindowNames {
		var past *model.PortfolioGrowthPoint

		switch name {
		case model.Window1Day:
			past = &series[last-1]
		case model.WindowTotal:
			past = &series[0]
		default:
			target := lookback(name, today)
			for i := last; i >= 0; i-- {
				if !Day(series[i].Date).After(target) {
					past = &series[i]
					break
				}
			}
		}

		if past == nil {
			continue
		}
		windows[name] = &model.ChangeWindow{
			Value:        roundMoney(reference - past.TotalBalanceValue),
			ValuePercent: Round(GrowthRate(reference, past.TotalBalanceValue), PercentPlaces),
		}
	}

	return windows
}
