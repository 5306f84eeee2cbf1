package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
)

// PriceProvider fetches daily closing prices from an external source.
// yahoo.FinanceClient is the production implementation.
type PriceProvider interface {
	GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) (model.PriceSeries, error)
}

// PriceService serves daily close series from the local price cache and backfills the
// cache from the provider when the requested range is not covered.
type PriceService struct {
	priceRepo       *repository.PriceRepository
	transactionRepo *repository.TransactionRepository
	provider        PriceProvider
	concurrency     int
}

// NewPriceService creates a new PriceService.
// concurrency bounds the number of symbols loaded at the same time.
func NewPriceService(
	priceRepo *repository.PriceRepository,
	transactionRepo *repository.TransactionRepository,
	provider PriceProvider,
	concurrency int,
) *PriceService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PriceService{
		priceRepo:       priceRepo,
		transactionRepo: transactionRepo,
		provider:        provider,
		concurrency:     concurrency,
	}
}

// LoadSeries returns the close series of every symbol from its start date through to.
//
// Symbols are loaded concurrently, at most s.concurrency at a time, one load per symbol.
// A symbol that fails to load is logged and left out of the result; it never fails the
// other symbols. The returned error is only set when ctx is cancelled.
//
// Parameters:
//   - ctx: Cancels outstanding loads
//   - from: First day to load, per symbol (usually the first trade date)
//   - to: Last day to load for every symbol
//
// Returns a map of symbol -> ascending series. Symbols with no closes in range map to an
// empty series.
func (s *PriceService) LoadSeries(ctx context.Context, from map[string]time.Time, to time.Time) (map[string]model.PriceSeries, error) {
	var mu sync.Mutex
	result := make(map[string]model.PriceSeries, len(from))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for symbol, start := range from {
		g.Go(func() error {
			series, err := s.loadSymbol(gctx, symbol, start, to)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("failed to load price series", "symbol", symbol, "error", err)
				return nil
			}

			mu.Lock()
			result[symbol] = series
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// loadSymbol makes sure the cache covers [from, to] and reads the series from it.
func (s *PriceService) loadSymbol(ctx context.Context, symbol string, from, to time.Time) (model.PriceSeries, error) {
	if _, err := s.backfill(ctx, symbol, from, to); err != nil {
		return nil, err
	}

	series, err := s.priceRepo.GetPrices(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePrices, err)
	}
	return series, nil
}

// backfill fetches the parts of [from, to] that lie outside the cached range of symbol
// and stores them.
//
// A provider failure is only an error when nothing is cached for the symbol at all;
// with a partial cache the failure is logged and the cached closes are served as is.
//
// Returns the number of closes added to the cache.
func (s *PriceService) backfill(ctx context.Context, symbol string, from, to time.Time) (int, error) {
	from, to = ledger.Day(from), ledger.Day(to)
	if from.After(to) {
		return 0, nil
	}

	first, last, cached, err := s.priceRepo.GetCachedRange(ctx, symbol)
	if err != nil {
		return 0, err
	}

	type gap struct{ from, to time.Time }
	var gaps []gap
	switch {
	case !cached:
		gaps = append(gaps, gap{from, to})
	default:
		if from.Before(first) {
			gaps = append(gaps, gap{from, first.AddDate(0, 0, -1)})
		}
		if last.Before(to) {
			gaps = append(gaps, gap{last.AddDate(0, 0, 1), to})
		}
	}

	added := 0
	for _, g := range gaps {
		series, err := s.provider.GetDailyCloses(ctx, symbol, g.from, g.to)
		if err != nil {
			if !cached {
				return 0, err
			}
			slog.Warn("price backfill failed, serving cached closes",
				"symbol", symbol,
				"from", g.from.Format(ledger.DateFormat),
				"to", g.to.Format(ledger.DateFormat),
				"error", err,
			)
			continue
		}

		n, err := s.priceRepo.InsertPrices(ctx, symbol, series)
		if err != nil {
			return added, err
		}
		added += n
	}

	if added > 0 {
		slog.Debug("price cache backfilled", "symbol", symbol, "added", added)
	}
	return added, nil
}

// RefreshAll backfills the price cache of every symbol found in any ledger, from its first
// trade date through the day before today. The nightly job calls this before
// materializing growth series.
//
// Symbols are refreshed concurrently like LoadSeries. Results are sorted by symbol.
func (s *PriceService) RefreshAll(ctx context.Context, today time.Time) (model.PriceRefreshResponse, error) {
	firstDates, err := s.transactionRepo.GetFirstTradeDates(ctx)
	if err != nil {
		return model.PriceRefreshResponse{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	to := ledger.Day(today).AddDate(0, 0, -1)
	response := model.PriceRefreshResponse{
		UpdatedSymbols: []model.UpdatedSymbol{},
		Errors:         []model.UpdatedSymbolError{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for symbol, from := range firstDates {
		g.Go(func() error {
			added, err := s.backfill(gctx, symbol, from, to)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				response.Errors = append(response.Errors, model.UpdatedSymbolError{Symbol: symbol, Error: err.Error()})
				return nil
			}
			response.UpdatedSymbols = append(response.UpdatedSymbols, model.UpdatedSymbol{Symbol: symbol, PricesAdded: added})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.PriceRefreshResponse{}, err
	}

	sort.Slice(response.UpdatedSymbols, func(i, j int) bool {
		return response.UpdatedSymbols[i].Symbol < response.UpdatedSymbols[j].Symbol
	})
	sort.Slice(response.Errors, func(i, j int) bool {
		return response.Errors[i].Symbol < response.Errors[j].Symbol
	})
	response.Success = len(response.Errors) == 0 || len(response.UpdatedSymbols) > 0

	return response, nil
}
