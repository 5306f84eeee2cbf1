package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/request"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionTypeBuy: true, model.TransactionTypeSell: true,
}

// ValidSymbolType contains the allowed symbol type values. Empty defaults to STOCK.
var ValidSymbolType = map[string]bool{
	"": true, model.SymbolTypeStock: true, model.SymbolTypeETF: true, model.SymbolTypeCrypto: true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - symbol: Must be non-empty
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be BUY or SELL (case-insensitive)
//   - units: Must be positive; whole units unless symbolType is CRYPTO
//   - unitPrice: Must be non-negative
//   - fees: Must be non-negative
//
// Optional fields:
//   - symbolType: STOCK, ETF or CRYPTO
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	txType := strings.ToUpper(strings.TrimSpace(req.Type))
	if txType == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[txType] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	symbolType := strings.ToUpper(strings.TrimSpace(req.SymbolType))
	if !ValidSymbolType[symbolType] {
		errors["symbolType"] = fmt.Sprintf("invalid symbolType: %s", req.SymbolType)
	}

	if req.Units <= 0 {
		errors["units"] = "units must be positive"
	} else if !model.IsFractional(symbolType) && req.Units != math.Trunc(req.Units) {
		errors["units"] = "units must be whole for non-crypto symbols"
	}

	if req.UnitPrice < 0 {
		errors["unitPrice"] = "unitPrice cannot be negative"
	}

	if req.Fees < 0 {
		errors["fees"] = "fees cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
