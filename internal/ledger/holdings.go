// Package ledger replays an account's append-only transaction ledger into holdings,
// per-asset and whole-portfolio growth series, and lookback change windows.
//
// Every function in this package is pure and deterministic: no clock, no I/O and no
// state shared between calls. "Today" is always an explicit argument.
package ledger

import (
	"errors"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// position is the running weighted-average cost accumulator of one symbol.
type position struct {
	symbolType     string
	sector         string
	units          float64
	invested       float64
	breakEvenPrice float64
}

// buy adds units at unitPrice and recomputes the weighted-average break-even price.
func (p position) buy(units, unitPrice float64) position {
	p.invested += units * unitPrice
	p.units += units
	p.breakEvenPrice = breakEven(p.invested, p.units)
	return p
}

// sell removes units using the average-cost method: the break-even price is untouched,
// only the carried cost basis shrinks to breakEvenPrice * remaining units.
func (p position) sell(units float64) (position, error) {
	if units > p.units+unitEpsilon {
		return p, apperrors.ErrInsufficientUnits
	}
	p.units -= units
	if isZeroUnits(p.units) {
		p.units = 0
		p.invested = 0
		return p, nil
	}
	p.invested = p.breakEvenPrice * p.units
	return p, nil
}

// breakEven returns invested / units, defined as 0 when no units are held.
func breakEven(invested, units float64) float64 {
	if isZeroUnits(units) {
		return 0
	}
	return invested / units
}

// ComputeHoldings folds a ledger into the current per-symbol positions.
//
// Transactions must be ordered by (date, insertion order); the order is preserved as given.
// A symbol that is sold down to zero and bought again continues on the same accumulator.
//
// Open SELL orders reserve units: they raise ReservedUnits and lower AvailableUnits
// without touching Units or Invested. Open BUY orders are ignored.
//
// A malformed record (see ValidateRecord) or a SELL exceeding the held units drops that
// symbol from the result and contributes a *RecordError to the returned error; all
// other symbols are still returned. The error is nil when every record is valid.
//
// Returns holdings with Units > 0, sorted by symbol. Invested is rounded to 2 decimals,
// BreakEvenPrice to 2 (4 for fractional-unit symbols) and units to 4.
func ComputeHoldings(transactions []model.Transaction, openOrders []model.Order) ([]model.Holding, error) {
	groups, symbols := groupBySymbol(transactions)
	reserved := reservedUnits(openOrders)

	var errs []error
	holdings := make([]model.Holding, 0, len(symbols))

	for _, symbol := range symbols {
		pos, err := foldPosition(groups[symbol])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if pos.units <= 0 {
			continue
		}

		fractional := model.IsFractional(pos.symbolType)
		units := roundUnits(pos.units)
		reservedForSymbol := roundUnits(reserved[symbol])

		holdings = append(holdings, model.Holding{
			Symbol:         symbol,
			SymbolType:     pos.symbolType,
			Sector:         pos.sector,
			Units:          units,
			ReservedUnits:  reservedForSymbol,
			AvailableUnits: roundUnits(max(0, units-reservedForSymbol)),
			Invested:       roundMoney(pos.invested),
			BreakEvenPrice: roundBreakEven(pos.breakEvenPrice, fractional),
		})
	}

	return holdings, errors.Join(errs...)
}

// foldPosition replays one symbol's records and stops at the first invalid one.
func foldPosition(records []indexedTransaction) (position, error) {
	var pos position
	for _, tx := range records {
		if err := ValidateRecord(tx.Transaction); err != nil {
			return position{}, newRecordError(tx, err)
		}

		pos.symbolType = tx.SymbolType
		if tx.Sector != "" {
			pos.sector = tx.Sector
		}

		switch tx.Type {
		case model.TransactionTypeBuy:
			pos = pos.buy(tx.Units, tx.UnitPrice)
		case model.TransactionTypeSell:
			var err error
			pos, err = pos.sell(tx.Units)
			if err != nil {
				return position{}, newRecordError(tx, err)
			}
		}
	}
	return pos, nil
}

// reservedUnits sums open SELL order units per symbol.
// Orders carrying a non-open status are skipped so callers may pass an unfiltered list.
func reservedUnits(orders []model.Order) map[string]float64 {
	reserved := make(map[string]float64)
	for _, o := range orders {
		if o.Type != model.TransactionTypeSell {
			continue
		}
		if o.Status != "" && o.Status != model.OrderStatusOpen {
			continue
		}
		reserved[o.Symbol] += o.Units
	}
	return reserved
}
