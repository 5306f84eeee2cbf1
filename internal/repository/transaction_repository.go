package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// TransactionRepository provides data access methods for the append-only transaction table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `
	id, account_id, symbol, symbol_type, COALESCE(sector, ''), date, type,
	units, unit_price, fees, realized_return_value, realized_return_change, created_at
`

// GetTransactions retrieves the full ledger of an account.
//
// Transactions are ordered by date and then by insertion order (SQLite rowid), so
// several transactions on the same day come back in the order they were recorded.
// The replay engine depends on that order and never re-sorts.
//
// Returns an empty slice if the account has no transactions.
func (r *TransactionRepository) GetTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE account_id = ?
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetFirstTradeDates returns every symbol traded across all accounts together with the
// date of its first transaction. The price refresh job uses it to decide which history
// to backfill.
func (r *TransactionRepository) GetFirstTradeDates(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, MIN(date)
		FROM "transaction"
		GROUP BY symbol
		ORDER BY symbol ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction symbols: %w", err)
	}
	defer rows.Close()

	symbols := make(map[string]time.Time)
	for rows.Next() {
		var symbol, firstDateStr string
		if err := rows.Scan(&symbol, &firstDateStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction symbols: %w", err)
		}
		firstDate, err := parseDay(firstDateStr)
		if err != nil {
			return nil, err
		}
		symbols[symbol] = firstDate
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction symbols: %w", err)
	}

	return symbols, nil
}

// InsertTransaction appends a transaction to the ledger.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (
			id, account_id, symbol, symbol_type, sector, date, type,
			units, unit_price, fees, realized_return_value, realized_return_change, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var sector sql.NullString
	if t.Sector != "" {
		sector = sql.NullString{String: t.Sector, Valid: true}
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.AccountID,
		t.Symbol,
		t.SymbolType,
		sector,
		t.Date.Format(dateLayout),
		t.Type,
		t.Units,
		t.UnitPrice,
		t.Fees,
		t.RealizedReturnValue,
		t.RealizedReturnChange,
		t.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Symbol,
			&t.SymbolType,
			&t.Sector,
			&dateStr,
			&t.Type,
			&t.Units,
			&t.UnitPrice,
			&t.Fees,
			&t.RealizedReturnValue,
			&t.RealizedReturnChange,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = parseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}
