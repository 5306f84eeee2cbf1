package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// querier is the subset of *sql.DB and *sql.Tx the repositories run statements through.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Storage formats of DATE and DATETIME columns.
const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// sqliteTimestamp is the format SQLite's CURRENT_TIMESTAMP produces.
const sqliteTimestamp = "2006-01-02 15:04:05"

// ParseTime parses a date string in "2006-01-02", RFC3339 or SQLite timestamp format.
// The SQLite driver hands DATE and DATETIME columns back in any of these depending on
// how the value was written.
func ParseTime(str string) (time.Time, error) {
	var firstErr error
	for _, layout := range []string{dateLayout, time.RFC3339, sqliteTimestamp} {
		returnTime, err := time.Parse(layout, str)
		if err == nil {
			return returnTime.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %w", firstErr)
}

// parseDay parses a DATE column and truncates it to midnight UTC.
func parseDay(str string) (time.Time, error) {
	t, err := ParseTime(str)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
