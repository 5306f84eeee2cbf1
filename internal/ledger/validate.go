package ledger

import (
	"math"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// unitEpsilon absorbs float drift when comparing unit quantities, e.g. 0.1+0.2 vs 0.3.
const unitEpsilon = 1e-9

// ValidateRecord checks the parts of a transaction that do not depend on ledger state.
// Whether a SELL exceeds the held units is checked while folding.
func ValidateRecord(tx model.Transaction) error {
	if tx.Type != model.TransactionTypeBuy && tx.Type != model.TransactionTypeSell {
		return apperrors.ErrInvalidTransactionType
	}
	if math.IsNaN(tx.Units) || math.IsInf(tx.Units, 0) || tx.Units <= 0 {
		return apperrors.ErrNonPositiveUnits
	}
	if !model.IsFractional(tx.SymbolType) && tx.Units != math.Trunc(tx.Units) {
		return apperrors.ErrFractionalUnits
	}
	if math.IsNaN(tx.UnitPrice) || math.IsInf(tx.UnitPrice, 0) || tx.UnitPrice < 0 {
		return apperrors.ErrInvalidPrice
	}
	if math.IsNaN(tx.Fees) || math.IsInf(tx.Fees, 0) || tx.Fees < 0 {
		return apperrors.ErrNegativeFees
	}
	return nil
}

// isZeroUnits reports whether a unit quantity is zero within unitEpsilon.
func isZeroUnits(units float64) bool {
	return math.Abs(units) < unitEpsilon
}
