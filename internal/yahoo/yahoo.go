package yahoo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

const chartPath = "/v8/finance/chart/{symbol}"

// FinanceClient provides methods for fetching daily closing prices from the Yahoo Finance API.
type FinanceClient struct {
	client *resty.Client
}

// NewFinanceClient creates a new Yahoo Finance client.
// The base URL and timeout come from configuration so tests can point it at a local server.
func NewFinanceClient(cfg config.YahooConfig) *FinanceClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "application/json")

	return &FinanceClient{client: client}
}

// GetDailyCloses fetches the daily closing prices of symbol between from and to (inclusive).
//
// Parameters:
//   - ctx: Cancels the HTTP request
//   - symbol: Ticker symbol (e.g., "AAPL", "BTC-USD")
//   - from: First day to include
//   - to: Last day to include
//
// Returns:
//   - model.PriceSeries: Ascending closes, one per trading day, days without a close omitted
//   - error: apperrors.ErrSymbolNotFound if Yahoo has no data for the symbol, or the
//     transport/parsing error otherwise
func (c *FinanceClient) GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) (model.PriceSeries, error) {
	slog.Debug("start yahoo chart request", "symbol", symbol, "from", from.Format("2006-01-02"), "to", to.Format("2006-01-02"))

	var result, failure Response
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"period1":  strconv.FormatInt(dayStart(from).Unix(), 10),
			"period2":  strconv.FormatInt(dayStart(to).AddDate(0, 0, 1).Unix(), 10),
		}).
		SetResult(&result).
		SetError(&failure).
		Get(chartPath)
	if err != nil {
		return nil, fmt.Errorf("yahoo request for %s failed: %w", symbol, err)
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusNotFound || isNotFound(failure.Chart.Error) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
		}
		if failure.Chart.Error != nil {
			return nil, fmt.Errorf("yahoo error for %s (status %d): %s", symbol, resp.StatusCode(), failure.Chart.Error.Description)
		}
		return nil, fmt.Errorf("yahoo request for %s returned status %d", symbol, resp.StatusCode())
	}

	if result.Chart.Error != nil {
		if isNotFound(result.Chart.Error) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("yahoo error for %s: %s", symbol, result.Chart.Error.Description)
	}

	series, err := ParseChart(result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	slog.Debug("yahoo chart request complete", "symbol", symbol, "closes", len(series))
	return series, nil
}

// ParseChart converts a raw chart response into an ascending close series.
//
// Timestamps are truncated to their UTC calendar day. Null closes (days Yahoo lists
// without a trade) are skipped, and a repeated day keeps its last close.
//
// Returns apperrors.ErrSymbolNotFound when the response has no result and an error when
// the timestamp and close arrays have different lengths.
func ParseChart(response Response) (model.PriceSeries, error) {
	if len(response.Chart.Result) == 0 {
		return nil, apperrors.ErrSymbolNotFound
	}
	result := response.Chart.Result[0]

	series := model.PriceSeries{}
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return series, nil
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths: %d timestamps, %d closes", len(result.Timestamp), len(closes))
	}

	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		day := dayStart(time.Unix(ts, 0))
		if n := len(series); n > 0 && series[n-1].Date.Equal(day) {
			series[n-1].Close = *closes[i]
			continue
		}
		series = append(series, model.ClosePrice{Date: day, Close: *closes[i]})
	}

	return series, nil
}

func isNotFound(chartErr *ChartError) bool {
	return chartErr != nil && chartErr.Code == "Not Found"
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
