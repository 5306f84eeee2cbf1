package model

// Holding is the current position of one symbol in an account, derived from the ledger.
// BreakEvenPrice is the weighted-average cost per unit (Invested / Units).
type Holding struct {
	Symbol         string  `json:"symbol"`
	SymbolType     string  `json:"symbolType"`
	Sector         string  `json:"sector,omitempty"`
	Units          float64 `json:"units"`
	ReservedUnits  float64 `json:"reservedUnits"`  // Units locked by open SELL orders
	AvailableUnits float64 `json:"availableUnits"` // Units - ReservedUnits, never negative
	Invested       float64 `json:"invested"`
	BreakEvenPrice float64 `json:"breakEvenPrice"`
}
