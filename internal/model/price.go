package model

import "time"

// ClosePrice is the closing price of a symbol on one trading day.
type ClosePrice struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ascending list of daily closes for a single symbol.
// It may start after the symbol's first transaction and may contain gaps.
type PriceSeries []ClosePrice

// StoredPrice is a cached daily close as persisted in the price table.
type StoredPrice struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
}

// PriceRefreshResponse summarises a bulk price refresh.
// Success is false only when every symbol failed.
type PriceRefreshResponse struct {
	Success        bool                 `json:"success"`
	UpdatedSymbols []UpdatedSymbol      `json:"updatedSymbols"`
	Errors         []UpdatedSymbolError `json:"errors"`
}

// UpdatedSymbol is a symbol whose cache received new closes.
type UpdatedSymbol struct {
	Symbol      string `json:"symbol"`
	PricesAdded int    `json:"pricesAdded"`
}

// UpdatedSymbolError is a symbol whose refresh failed.
type UpdatedSymbolError struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}
