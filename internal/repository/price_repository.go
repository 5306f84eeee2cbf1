package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// PriceRepository provides data access methods for the price table, a local cache of
// daily closes fetched from the price provider.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPrices retrieves the cached closes of a symbol between startDate and endDate (inclusive),
// in ascending date order. Returns an empty series if nothing is cached.
func (r *PriceRepository) GetPrices(ctx context.Context, symbol string, startDate, endDate time.Time) (model.PriceSeries, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, close
		FROM price
		WHERE symbol = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`, symbol, startDate.Format(dateLayout), endDate.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	series := model.PriceSeries{}
	for rows.Next() {
		var dateStr string
		var p model.ClosePrice

		if err := rows.Scan(&dateStr, &p.Close); err != nil {
			return nil, fmt.Errorf("failed to scan price table results: %w", err)
		}

		p.Date, err = parseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		series = append(series, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price table: %w", err)
	}

	return series, nil
}

// GetCachedRange returns the oldest and newest cached close dates of a symbol.
// The boolean is false when the symbol has no cached closes.
func (r *PriceRepository) GetCachedRange(ctx context.Context, symbol string) (first, last time.Time, ok bool, err error) {
	var firstStr, lastStr sql.NullString

	err = r.db.QueryRowContext(ctx,
		`SELECT MIN(date), MAX(date) FROM price WHERE symbol = ?`,
		symbol,
	).Scan(&firstStr, &lastStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query cached price range: %w", err)
	}
	if !firstStr.Valid || !lastStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	if first, err = parseDay(firstStr.String); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if last, err = parseDay(lastStr.String); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return first, last, true, nil
}

// InsertPrices caches closes for a symbol inside one database transaction.
// Dates that are already cached are left untouched.
//
// Returns the number of closes actually added.
func (r *PriceRepository) InsertPrices(ctx context.Context, symbol string, prices model.PriceSeries) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO price (id, symbol, date, close)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, p := range prices {
		res, err := stmt.ExecContext(ctx, uuid.New().String(), symbol, p.Date.Format(dateLayout), p.Close)
		if err != nil {
			return 0, fmt.Errorf("failed to insert price for %s on %s: %w", symbol, p.Date.Format(dateLayout), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prices: %w", err)
	}

	return added, nil
}
