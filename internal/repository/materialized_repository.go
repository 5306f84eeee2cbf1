package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// MaterializedRepository provides data access methods for the portfolio_growth_materialized table.
type MaterializedRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewMaterializedRepository creates a new repository instance.
func NewMaterializedRepository(db *sql.DB) *MaterializedRepository {
	return &MaterializedRepository{db: db}
}

// WithTx returns a new MaterializedRepository scoped to the provided transaction.
func (r *MaterializedRepository) WithTx(tx *sql.Tx) *MaterializedRepository {
	return &MaterializedRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *MaterializedRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetMaterializedGrowth retrieves pre-calculated portfolio growth points of an account.
// This method streams results using a callback pattern to minimize memory usage.
//
// The table holds the daily portfolio series as last computed by the refresh job, so a
// request can be answered without replaying the ledger.
//
// Parameters:
//   - accountID: Account to read
//   - startDate: First date to include in results (inclusive)
//   - endDate: Last date to include in results (inclusive)
//   - callback: Function called for each record found, in ascending date order
//
// Returns an error if the query fails or if the callback returns an error during processing.
func (r *MaterializedRepository) GetMaterializedGrowth(
	ctx context.Context,
	accountID string,
	startDate, endDate time.Time,
	callback func(record model.PortfolioGrowthMaterialized) error,
) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_id, date, break_even_value, market_total_value, total_balance_value, calculated_at
		FROM portfolio_growth_materialized
		WHERE account_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`, accountID, startDate.Format(dateLayout), endDate.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to query portfolio_growth_materialized: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.PortfolioGrowthMaterialized
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&record.AccountID,
			&dateStr,
			&record.Point.BreakEvenValue,
			&record.Point.MarketTotalValue,
			&record.Point.TotalBalanceValue,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record.Point.Date, err = parseDay(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		record.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// GetLatestMaterializedDate returns the newest materialized date of an account.
// The boolean is false when nothing has been materialized yet.
func (r *MaterializedRepository) GetLatestMaterializedDate(ctx context.Context, accountID string) (time.Time, bool, error) {
	var latest sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(date) FROM portfolio_growth_materialized WHERE account_id = ?`,
		accountID,
	).Scan(&latest)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query latest materialized date: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}

	day, err := parseDay(latest.String)
	if err != nil {
		return time.Time{}, false, err
	}
	return day, true, nil
}

// ReplaceMaterializedGrowth swaps the stored series of an account for points in a single
// database transaction, so readers never observe a half-written series.
//
// ledgerSize is the number of ledger records the points were computed from. The ledger is
// append-only, so a different row count at write time means a transaction was recorded
// while the series was being computed; nothing is written and
// apperrors.ErrLedgerChanged is returned.
func (r *MaterializedRepository) ReplaceMaterializedGrowth(
	ctx context.Context,
	accountID string,
	ledgerSize int,
	points []model.PortfolioGrowthPoint,
	calculatedAt time.Time,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var current int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM "transaction" WHERE account_id = ?`, accountID).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to count ledger records: %w", err)
	}
	if current != ledgerSize {
		return fmt.Errorf("%w: computed from %d records, ledger now has %d", apperrors.ErrLedgerChanged, ledgerSize, current)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM portfolio_growth_materialized WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to clear materialized growth: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO portfolio_growth_materialized
			(account_id, date, break_even_value, market_total_value, total_balance_value, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare materialized insert: %w", err)
	}
	defer stmt.Close()

	calculatedAtStr := calculatedAt.UTC().Format(timeLayout)
	for _, p := range points {
		_, err := stmt.ExecContext(ctx,
			accountID,
			p.Date.Format(dateLayout),
			p.BreakEvenValue,
			p.MarketTotalValue,
			p.TotalBalanceValue,
			calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to insert materialized point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit materialized growth: %w", err)
	}

	return nil
}

// DeleteMaterializedGrowth drops the stored series of an account, forcing the next read
// to recompute. Called in the same transaction as every ledger append.
func (r *MaterializedRepository) DeleteMaterializedGrowth(ctx context.Context, accountID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM portfolio_growth_materialized WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to delete materialized growth: %w", err)
	}
	return nil
}
