package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Growth").
//	    WithStartingCash(10000).
//	    Build(t, db)
type AccountBuilder struct {
	ID           string
	Name         string
	StartingCash float64
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:           MakeID(),
		Name:         MakeAccountName("Test Account"),
		StartingCash: 0,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithStartingCash sets the starting cash balance.
func (b *AccountBuilder) WithStartingCash(cash float64) *AccountBuilder {
	b.StartingCash = cash
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	createdAt := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO account (id, name, starting_cash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.StartingCash, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:           b.ID,
		Name:         b.Name,
		StartingCash: b.StartingCash,
		CreatedAt:    createdAt,
	}
}

// CreateAccount creates an account with the given name and default values.
//
// Example usage:
//
//	account := testutil.CreateAccount(t, db, "My Account")
func CreateAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Build(t, db)
}

// TransactionBuilder provides a fluent interface for appending ledger records.
// Records are stored in Build order, which is the replay order for same-day records.
type TransactionBuilder struct {
	ID         string
	AccountID  string
	Symbol     string
	SymbolType string
	Sector     string
	Date       time.Time
	Type       string
	Units      float64
	UnitPrice  float64
	Fees       float64
}

// NewTransaction creates a BUY of 10 units at 100 dated 2024-03-04.
func NewTransaction(accountID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:         MakeID(),
		AccountID:  accountID,
		Symbol:     "AAPL",
		SymbolType: model.SymbolTypeStock,
		Date:       MustDate("2024-03-04"),
		Type:       model.TransactionTypeBuy,
		Units:      10,
		UnitPrice:  100,
	}
}

// WithSymbol sets the symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithSymbolType sets the symbol type.
func (b *TransactionBuilder) WithSymbolType(symbolType string) *TransactionBuilder {
	b.SymbolType = symbolType
	return b
}

// WithSector sets the sector.
func (b *TransactionBuilder) WithSector(sector string) *TransactionBuilder {
	b.Sector = sector
	return b
}

// WithDate sets the transaction date from a "2006-01-02" string.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = MustDate(date)
	return b
}

// Sell turns the record into a SELL.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionTypeSell
	return b
}

// WithUnits sets the number of units
func (b *TransactionBuilder) WithUnits(units float64) *TransactionBuilder {
	b.Units = units
	return b
}

// WithUnitPrice sets the price per unit
func (b *TransactionBuilder) WithUnitPrice(price float64) *TransactionBuilder {
	b.UnitPrice = price
	return b
}

// WithFees sets the fees
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = fees
	return b
}

// Build creates the transaction in the database
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, account_id, symbol, symbol_type, sector, date, type, units, unit_price, fees)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var sector sql.NullString
	if b.Sector != "" {
		sector = sql.NullString{String: b.Sector, Valid: true}
	}

	_, err := db.Exec(query, b.ID, b.AccountID, b.Symbol, b.SymbolType, sector,
		b.Date.Format("2006-01-02"), b.Type, b.Units, b.UnitPrice, b.Fees)
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return model.Transaction{
		ID:         b.ID,
		AccountID:  b.AccountID,
		Symbol:     b.Symbol,
		SymbolType: b.SymbolType,
		Sector:     b.Sector,
		Date:       b.Date,
		Type:       b.Type,
		Units:      b.Units,
		UnitPrice:  b.UnitPrice,
		Fees:       b.Fees,
	}
}

// OrderBuilder provides a fluent interface for creating orders.
type OrderBuilder struct {
	ID        string
	AccountID string
	Symbol    string
	Type      string
	Units     float64
	UnitPrice float64
	Status    string
}

// NewOrder creates an open SELL order of 1 unit of AAPL.
func NewOrder(accountID string) *OrderBuilder {
	return &OrderBuilder{
		ID:        MakeID(),
		AccountID: accountID,
		Symbol:    "AAPL",
		Type:      model.TransactionTypeSell,
		Units:     1,
		UnitPrice: 100,
		Status:    model.OrderStatusOpen,
	}
}

// WithSymbol sets the symbol.
func (b *OrderBuilder) WithSymbol(symbol string) *OrderBuilder {
	b.Symbol = symbol
	return b
}

// WithType sets the order type.
func (b *OrderBuilder) WithType(orderType string) *OrderBuilder {
	b.Type = orderType
	return b
}

// WithUnits sets the number of units.
func (b *OrderBuilder) WithUnits(units float64) *OrderBuilder {
	b.Units = units
	return b
}

// WithStatus sets the order status.
func (b *OrderBuilder) WithStatus(status string) *OrderBuilder {
	b.Status = status
	return b
}

// Build creates the order in the database
func (b *OrderBuilder) Build(t *testing.T, db *sql.DB) model.Order {
	t.Helper()

	query := `
		INSERT INTO orders (id, account_id, symbol, type, units, unit_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AccountID, b.Symbol, b.Type, b.Units, b.UnitPrice, b.Status)
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	return model.Order{
		ID:        b.ID,
		AccountID: b.AccountID,
		Symbol:    b.Symbol,
		Type:      b.Type,
		Units:     b.Units,
		UnitPrice: b.UnitPrice,
		Status:    b.Status,
	}
}

// CreatePrices stores a close series for symbol in the price cache.
//
// Example usage:
//
//	testutil.CreatePrices(t, db, "AAPL", testutil.Closes("2024-03-04", 100.0))
func CreatePrices(t *testing.T, db *sql.DB, symbol string, series model.PriceSeries) {
	t.Helper()

	query := `
		INSERT INTO price (id, symbol, date, close)
		VALUES (?, ?, ?, ?)
	`

	for _, p := range series {
		if _, err := db.Exec(query, MakeID(), symbol, p.Date.Format("2006-01-02"), p.Close); err != nil {
			t.Fatalf("Failed to create price: %v", err)
		}
	}
}

// CreateMaterializedPoints stores a portfolio series for an account in the materialized table.
func CreateMaterializedPoints(t *testing.T, db *sql.DB, accountID string, points []model.PortfolioGrowthPoint) {
	t.Helper()

	query := `
		INSERT INTO portfolio_growth_materialized
			(account_id, date, break_even_value, market_total_value, total_balance_value, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	calculatedAt := time.Now().UTC().Format(time.RFC3339)
	for _, p := range points {
		_, err := db.Exec(query, accountID, p.Date.Format("2006-01-02"),
			p.BreakEvenValue, p.MarketTotalValue, p.TotalBalanceValue, calculatedAt)
		if err != nil {
			t.Fatalf("Failed to create materialized point: %v", err)
		}
	}
}
