package model

import "time"

// Account owns a transaction ledger and a starting cash balance.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartingCash float64   `json:"startingCash"`
	CreatedAt    time.Time `json:"createdAt"`
}
