package model

import "time"

// Transaction types.
const (
	TransactionTypeBuy  = "BUY"
	TransactionTypeSell = "SELL"
)

// Symbol types. CRYPTO is the only fractional-unit type; everything else trades in whole units.
const (
	SymbolTypeStock  = "STOCK"
	SymbolTypeETF    = "ETF"
	SymbolTypeCrypto = "CRYPTO"
)

// Transaction is one immutable ledger entry for an account.
// RealizedReturnValue and RealizedReturnChange are only set for SELL and are computed
// at execution time against the break-even price in effect at that moment.
type Transaction struct {
	ID                   string    `json:"id"`
	AccountID            string    `json:"accountId"`
	Symbol               string    `json:"symbol"`
	SymbolType           string    `json:"symbolType"`
	Sector               string    `json:"sector,omitempty"`
	Date                 time.Time `json:"date"`
	Type                 string    `json:"type"`
	Units                float64   `json:"units"`
	UnitPrice            float64   `json:"unitPrice"`
	Fees                 float64   `json:"fees"`
	RealizedReturnValue  float64   `json:"realizedReturnValue"`
	RealizedReturnChange float64   `json:"realizedReturnChange"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
}

// IsFractional reports whether the symbol may be held in fractional units.
func IsFractional(symbolType string) bool {
	return symbolType == SymbolTypeCrypto
}
