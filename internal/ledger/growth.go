package ledger

import (
	"errors"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// GrowthResult is the output of ComputeGrowth.
type GrowthResult struct {
	Assets    []model.AssetGrowth          `json:"assets"`
	Portfolio []model.PortfolioGrowthPoint `json:"portfolio"`
	// Skipped lists symbols left out because they had no usable price series.
	Skipped []string `json:"skipped,omitempty"`
}

// ComputeGrowth replays a whole account ledger against the price series of its symbols
// and merges the per-asset series into a portfolio series.
//
// Each symbol is replayed on its own. A symbol without a price series, or whose series
// produces no points, is listed in Skipped and left out of both outputs. A symbol with an
// invalid record is left out as well and its *RecordError is included in the returned
// error; the remaining symbols are still aggregated.
//
// Assets are returned sorted by symbol.
func ComputeGrowth(
	transactions []model.Transaction,
	pricesBySymbol map[string]model.PriceSeries,
	startingCash float64,
	today time.Time,
	cal Calendar,
) (GrowthResult, error) {
	groups, symbols := groupBySymbol(transactions)

	result := GrowthResult{Assets: make([]model.AssetGrowth, 0, len(symbols))}
	var errs []error

	for _, symbol := range symbols {
		prices, ok := pricesBySymbol[symbol]
		if !ok || len(prices) == 0 {
			result.Skipped = append(result.Skipped, symbol)
			continue
		}

		growth, err := replay(symbol, groups[symbol], prices)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(growth.Points) == 0 {
			result.Skipped = append(result.Skipped, symbol)
			continue
		}

		result.Assets = append(result.Assets, growth)
	}

	result.Portfolio = AggregatePortfolio(result.Assets, startingCash, today, cal)
	return result, errors.Join(errs...)
}
