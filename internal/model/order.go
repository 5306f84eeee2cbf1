package model

import "time"

// Order statuses.
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusExecuted  = "EXECUTED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is a not yet executed instruction to buy or sell a symbol.
// Open SELL orders reserve units of the matching holding.
type Order struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Symbol    string    `json:"symbol"`
	Type      string    `json:"type"`
	Units     float64   `json:"units"`
	UnitPrice float64   `json:"unitPrice"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
