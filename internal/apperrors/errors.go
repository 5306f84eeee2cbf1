package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSymbolNotFound indicates that the price provider has no data for a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Ledger validation errors describe a malformed transaction record.
// They are raised per symbol and never block processing of other symbols.
var (
	// ErrNonPositiveUnits indicates a record with zero or negative units.
	ErrNonPositiveUnits = errors.New("units must be positive")

	// ErrFractionalUnits indicates fractional units on a symbol that only trades whole units.
	ErrFractionalUnits = errors.New("fractional units are not allowed for this symbol type")

	// ErrInvalidPrice indicates a negative or non-numeric unit price.
	ErrInvalidPrice = errors.New("unit price must be a non-negative number")

	// ErrNegativeFees indicates a record with negative or non-finite fees.
	ErrNegativeFees = errors.New("fees must be a non-negative number")

	// ErrInvalidTransactionType indicates a type other than BUY or SELL.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInsufficientUnits indicates that a SELL exceeds the units held at that point of the ledger.
	ErrInsufficientUnits = errors.New("insufficient units for sale")

	// ErrPredatesSale indicates a new record dated before an already recorded SELL of the same
	// symbol. It would change the cost basis that SELL's realized return was fixed against.
	ErrPredatesSale = errors.New("transaction predates a recorded sale of the symbol")
)

// IsLedgerValidation reports whether err is (or wraps) a ledger validation error.
func IsLedgerValidation(err error) bool {
	for _, target := range []error{
		ErrNonPositiveUnits,
		ErrFractionalUnits,
		ErrInvalidPrice,
		ErrNegativeFees,
		ErrInvalidTransactionType,
		ErrInsufficientUnits,
		ErrPredatesSale,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDate indicates that a date parameter could not be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveOrders       = errors.New("failed to retrieve orders")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToComputeGrowth        = errors.New("failed to compute growth")

	// ErrLedgerChanged indicates that the ledger grew while a growth series was being
	// materialized, so the series is stale.
	ErrLedgerChanged = errors.New("ledger changed during materialization")
)
