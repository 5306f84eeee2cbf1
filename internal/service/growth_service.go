package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
)

// GrowthService replays account ledgers against price history into growth series and
// change windows. It coordinates between the materialized table and on-demand replay.
type GrowthService struct {
	accountRepo      *repository.AccountRepository
	transactionRepo  *repository.TransactionRepository
	materializedRepo *repository.MaterializedRepository
	priceService     *PriceService
	calendar         ledger.Calendar
}

// NewGrowthService creates a new GrowthService. A nil calendar defaults to the NYSE calendar.
func NewGrowthService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	materializedRepo *repository.MaterializedRepository,
	priceService *PriceService,
	calendar ledger.Calendar,
) *GrowthService {
	if calendar == nil {
		calendar = ledger.NYSECalendar{}
	}
	return &GrowthService{
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		materializedRepo: materializedRepo,
		priceService:     priceService,
		calendar:         calendar,
	}
}

// GetGrowth replays an account's full ledger and returns the per-asset series and the
// portfolio series through the day before today.
//
// Price series are loaded from each symbol's first trade date. Symbols without prices and
// symbols with an invalid ledger record are logged and left out of the result.
//
// Returns apperrors.ErrAccountNotFound if the account does not exist.
func (s *GrowthService) GetGrowth(ctx context.Context, accountID string, today time.Time) (ledger.GrowthResult, error) {
	account, err := s.accountRepo.GetAccount(ctx, accountID)
	if err != nil {
		return ledger.GrowthResult{}, err
	}

	transactions, err := s.transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return ledger.GrowthResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	return s.replay(ctx, account, transactions, today)
}

// replay runs the growth engine over an already loaded ledger.
func (s *GrowthService) replay(ctx context.Context, account model.Account, transactions []model.Transaction, today time.Time) (ledger.GrowthResult, error) {
	to := ledger.Day(today).AddDate(0, 0, -1)
	prices, err := s.priceService.LoadSeries(ctx, firstTradeDates(transactions), to)
	if err != nil {
		return ledger.GrowthResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePrices, err)
	}

	result, err := ledger.ComputeGrowth(transactions, prices, account.StartingCash, today, s.calendar)
	if err != nil {
		logLedgerErrors(account.ID, err)
	}
	if len(result.Skipped) > 0 {
		slog.Info("symbols without price history left out of growth", "account", account.ID, "symbols", result.Skipped)
	}

	return result, nil
}

// GetPortfolioGrowthWithFallback returns the portfolio series of an account through the
// day before today.
//
// The materialized table is used when its newest point reaches the last trading day
// before today; otherwise the series is replayed on demand. A failing materialized read
// also falls back to replay.
func (s *GrowthService) GetPortfolioGrowthWithFallback(ctx context.Context, accountID string, today time.Time) ([]model.PortfolioGrowthPoint, error) {
	end := ledger.Day(today).AddDate(0, 0, -1)
	lastTradingDay := previousTradingDay(today, s.calendar)

	latest, ok, err := s.materializedRepo.GetLatestMaterializedDate(ctx, accountID)
	if err == nil && ok && !latest.Before(lastTradingDay) {
		points := make([]model.PortfolioGrowthPoint, 0)
		err = s.materializedRepo.GetMaterializedGrowth(ctx, accountID, time.Time{}, end,
			func(record model.PortfolioGrowthMaterialized) error {
				points = append(points, record.Point)
				return nil
			},
		)
		if err == nil {
			return points, nil
		}
	}
	if err != nil {
		slog.Warn("materialized growth unavailable, replaying ledger", "account", accountID, "error", err)
	}

	result, err := s.GetGrowth(ctx, accountID, today)
	if err != nil {
		return nil, err
	}
	return result.Portfolio, nil
}

// GetChangeWindows returns the lookback deltas of an account's total balance as of today.
func (s *GrowthService) GetChangeWindows(ctx context.Context, accountID string, today time.Time) (model.ChangeWindows, error) {
	series, err := s.GetPortfolioGrowthWithFallback(ctx, accountID, today)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeChangeWindows(series, today), nil
}

// MaterializeAll recomputes and stores the portfolio series of every account.
// A failing account is logged and does not stop the others; the failures are returned
// joined together.
//
// An account whose ledger grows while its series is computed is left without a stored
// series, so reads replay the ledger until the next run.
func (s *GrowthService) MaterializeAll(ctx context.Context, today time.Time) error {
	accounts, err := s.accountRepo.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveAccounts, err)
	}

	calculatedAt := time.Now().UTC()
	var errs []error

	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}

		points, err := s.materialize(ctx, account, today, calculatedAt)
		if errors.Is(err, apperrors.ErrLedgerChanged) {
			slog.Info("ledger changed while materializing, skipped", "account", account.ID, "error", err)
			continue
		}
		if err != nil {
			slog.Error("failed to materialize growth", "account", account.ID, "error", err)
			errs = append(errs, fmt.Errorf("account %s: %w", account.ID, err))
			continue
		}

		slog.Info("materialized growth", "account", account.ID, "points", points)
	}

	return errors.Join(errs...)
}

// materialize replays one account and replaces its stored series, returning the number of
// points written.
func (s *GrowthService) materialize(ctx context.Context, account model.Account, today, calculatedAt time.Time) (int, error) {
	transactions, err := s.transactionRepo.GetTransactions(ctx, account.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	result, err := s.replay(ctx, account, transactions, today)
	if err != nil {
		return 0, err
	}

	err = s.materializedRepo.ReplaceMaterializedGrowth(ctx, account.ID, len(transactions), result.Portfolio, calculatedAt)
	if err != nil {
		return 0, err
	}
	return len(result.Portfolio), nil
}
