package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/service"
)

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	return service.NewAccountService(repository.NewAccountRepository(db))
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		db,
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewMaterializedRepository(db),
	)
}

func NewTestHoldingsService(t *testing.T, db *sql.DB) *service.HoldingsService {
	t.Helper()

	return service.NewHoldingsService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewOrderRepository(db),
	)
}

// NewTestPriceService creates a PriceService backed by the given provider.
func NewTestPriceService(t *testing.T, db *sql.DB, provider service.PriceProvider) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		repository.NewPriceRepository(db),
		repository.NewTransactionRepository(db),
		provider,
		4,
	)
}

// NewTestGrowthService creates a GrowthService backed by the given provider and calendar.
// A nil calendar uses the NYSE calendar.
func NewTestGrowthService(t *testing.T, db *sql.DB, provider service.PriceProvider, cal ledger.Calendar) *service.GrowthService {
	t.Helper()

	return service.NewGrowthService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewMaterializedRepository(db),
		NewTestPriceService(t, db, provider),
		cal,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Savings")
//	// Returns: "Savings ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// MustDate parses a "2006-01-02" date as UTC midnight and panics on malformed input.
func MustDate(value string) time.Time {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return day
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
