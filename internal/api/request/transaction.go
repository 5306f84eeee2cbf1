package request

// CreateTransactionRequest is the body of POST /api/account/{uuid}/transactions.
// SymbolType defaults to STOCK; RealizedReturn fields are computed by the server.
type CreateTransactionRequest struct {
	Symbol     string  `json:"symbol"`
	SymbolType string  `json:"symbolType,omitempty"`
	Sector     string  `json:"sector,omitempty"`
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	Units      float64 `json:"units"`
	UnitPrice  float64 `json:"unitPrice"`
	Fees       float64 `json:"fees"`
}
