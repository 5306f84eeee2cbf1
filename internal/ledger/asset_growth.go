package ledger

import (
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// replayState is the accumulator threaded through a single symbol's replay.
// It is passed and returned by value on every step; nothing is captured or mutated in place.
type replayState struct {
	units             float64
	breakEvenPrice    float64
	accumulatedReturn float64 // Realized P&L minus fees, independent of position size
	next              int     // Index of the next pending transaction
	lastMarketZero    bool    // The last emitted point had a zero market total
}

// fold applies one transaction to the state.
//
//   - BUY: recomputes the weighted break-even price and adds units
//   - SELL: removes units, keeps the break-even price, adds the realized return
//   - both: subtract fees from the accumulated return
func (s replayState) fold(tx indexedTransaction) (replayState, error) {
	if err := ValidateRecord(tx.Transaction); err != nil {
		return s, newRecordError(tx, err)
	}

	switch tx.Type {
	case model.TransactionTypeBuy:
		total := s.units*s.breakEvenPrice + tx.Units*tx.UnitPrice
		s.units += tx.Units
		s.breakEvenPrice = breakEven(total, s.units)
	case model.TransactionTypeSell:
		if tx.Units > s.units+unitEpsilon {
			return s, newRecordError(tx, apperrors.ErrInsufficientUnits)
		}
		s.units -= tx.Units
		if isZeroUnits(s.units) {
			s.units = 0
		}
		s.accumulatedReturn += tx.RealizedReturnValue
	}

	s.accumulatedReturn -= tx.Fees
	s.next++
	return s, nil
}

// point builds the growth point for one price date. Each field is rounded on its own and
// profit is derived from the rounded components so the row always adds up.
func (s replayState) point(price model.ClosePrice) model.AssetGrowthPoint {
	invested := roundMoney(s.units * s.breakEvenPrice)
	market := roundMoney(s.units * price.Close)
	accumulated := roundMoney(s.accumulatedReturn)

	return model.AssetGrowthPoint{
		Date:              Day(price.Date),
		Units:             roundUnits(s.units),
		InvestedTotal:     invested,
		MarketTotal:       market,
		AccumulatedReturn: accumulated,
		Profit:            roundMoney(market - invested + accumulated),
	}
}

// ReplayAsset folds one symbol's transactions against its daily closes into a dated
// value series. transactions must all belong to symbol and be in ascending
// (date, insertion order); prices must be ascending.
//
// Replay rules:
//   - Transactions dated before the first close seed the accumulator before the first point.
//   - On each close, every pending transaction dated on or before that day is folded first,
//     so a trade on a market holiday lands on the next trading day.
//   - No point is emitted before the first transaction.
//   - Zero collapse: two consecutive points never both have a zero market total. When a
//     position closes exactly one zero point is emitted, including for a symbol that is
//     never reopened, and emission resumes when units are bought again.
//
// Returns an empty series (no error) when prices is empty; the caller drops such symbols.
// Returns a *RecordError if a record is malformed or a SELL exceeds the held units.
func ReplayAsset(symbol string, transactions []model.Transaction, prices model.PriceSeries) (model.AssetGrowth, error) {
	records := make([]indexedTransaction, len(transactions))
	for i, tx := range transactions {
		records[i] = indexedTransaction{Transaction: tx, index: i}
	}
	return replay(symbol, records, prices)
}

func replay(symbol string, records []indexedTransaction, prices model.PriceSeries) (model.AssetGrowth, error) {
	growth := model.AssetGrowth{Symbol: symbol, Points: []model.AssetGrowthPoint{}}
	if len(prices) == 0 || len(records) == 0 {
		return growth, nil
	}

	var (
		state replayState
		err   error
	)

	// Seed with everything that predates the series.
	firstDay := Day(prices[0].Date)
	for state.next < len(records) && Day(records[state.next].Date).Before(firstDay) {
		if state, err = state.fold(records[state.next]); err != nil {
			return model.AssetGrowth{}, err
		}
	}

	for _, price := range prices {
		day := Day(price.Date)
		for state.next < len(records) && !Day(records[state.next].Date).After(day) {
			if state, err = state.fold(records[state.next]); err != nil {
				return model.AssetGrowth{}, err
			}
		}

		if state.next == 0 {
			continue
		}

		var emit bool
		point := state.point(price)
		state, emit = state.collapse(point)
		if emit {
			growth.Points = append(growth.Points, point)
		}
	}

	return growth, nil
}

// collapse applies the zero-collapse rule and reports whether point should be emitted.
func (s replayState) collapse(point model.AssetGrowthPoint) (replayState, bool) {
	if point.MarketTotal != 0 {
		s.lastMarketZero = false
		return s, true
	}
	if s.lastMarketZero {
		return s, false
	}
	s.lastMarketZero = true
	return s, true
}
