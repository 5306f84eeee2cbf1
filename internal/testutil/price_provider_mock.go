package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// ProviderCall records one GetDailyCloses invocation.
type ProviderCall struct {
	Symbol string
	From   time.Time
	To     time.Time
}

// MockPriceProvider is an in-memory service.PriceProvider for testing.
// It serves the closes configured per symbol that fall inside the requested range and is
// safe for concurrent use.
type MockPriceProvider struct {
	mu     sync.Mutex
	series map[string]model.PriceSeries
	errs   map[string]error
	calls  []ProviderCall
}

// NewMockPriceProvider creates a provider that knows no symbols.
func NewMockPriceProvider() *MockPriceProvider {
	return &MockPriceProvider{
		series: make(map[string]model.PriceSeries),
		errs:   make(map[string]error),
	}
}

// WithSeries configures the closes returned for symbol.
func (m *MockPriceProvider) WithSeries(symbol string, series model.PriceSeries) *MockPriceProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[symbol] = series
	return m
}

// WithError configures the error returned for symbol.
func (m *MockPriceProvider) WithError(symbol string, err error) *MockPriceProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[symbol] = err
	return m
}

// GetDailyCloses returns the configured closes of symbol between from and to inclusive.
// Unknown symbols return apperrors.ErrSymbolNotFound.
func (m *MockPriceProvider) GetDailyCloses(_ context.Context, symbol string, from, to time.Time) (model.PriceSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, ProviderCall{Symbol: symbol, From: from, To: to})

	if err, ok := m.errs[symbol]; ok {
		return nil, err
	}
	series, ok := m.series[symbol]
	if !ok {
		return nil, apperrors.ErrSymbolNotFound
	}

	result := model.PriceSeries{}
	for _, p := range series {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockPriceProvider) Calls() []ProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProviderCall(nil), m.calls...)
}

// CallCount returns how many times symbol was requested.
func (m *MockPriceProvider) CallCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c.Symbol == symbol {
			n++
		}
	}
	return n
}

// Closes builds a price series from alternating "2006-01-02" dates and close values.
//
// Example usage:
//
//	series := testutil.Closes("2024-03-04", 100.0, "2024-03-05", 101.5)
func Closes(pairs ...any) model.PriceSeries {
	series := make(model.PriceSeries, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		series = append(series, model.ClosePrice{
			Date:  MustDate(pairs[i].(string)),
			Close: pairs[i+1].(float64),
		})
	}
	return series
}
