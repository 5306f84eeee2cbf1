package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// logLedgerErrors writes one warning per invalid symbol found while replaying a ledger.
// The engine has already left those symbols out; the remaining results are still served.
func logLedgerErrors(accountID string, err error) {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		slog.Warn("ledger replay error", "account", accountID, "error", err)
		return
	}

	for _, e := range joined.Unwrap() {
		var recordErr *ledger.RecordError
		if errors.As(e, &recordErr) {
			slog.Warn("skipping symbol with invalid ledger record",
				"account", accountID,
				"symbol", recordErr.Symbol,
				"index", recordErr.Index,
				"transaction", recordErr.TransactionID,
				"error", recordErr.Err,
			)
			continue
		}
		slog.Warn("ledger replay error", "account", accountID, "error", e)
	}
}

// firstTradeDates maps each symbol of a ledger to the date of its first transaction.
func firstTradeDates(transactions []model.Transaction) map[string]time.Time {
	first := make(map[string]time.Time)
	for _, tx := range transactions {
		day := ledger.Day(tx.Date)
		if current, ok := first[tx.Symbol]; !ok || day.Before(current) {
			first[tx.Symbol] = day
		}
	}
	return first
}

// previousTradingDay returns the latest day before today the calendar marks as open.
// This is the last day a portfolio series ending "yesterday" can contain.
func previousTradingDay(today time.Time, cal ledger.Calendar) time.Time {
	day := ledger.Day(today).AddDate(0, 0, -1)
	// Longest NYSE closure is a weekend plus two holidays.
	for i := 0; i < 10 && !cal.IsTradingDay(day); i++ {
		day = day.AddDate(0, 0, -1)
	}
	return day
}
