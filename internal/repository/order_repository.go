package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// OrderRepository provides data access methods for the orders table.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository with the provided database connection.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetOpenOrders retrieves every order of an account that has not been executed or cancelled.
func (r *OrderRepository) GetOpenOrders(ctx context.Context, accountID string) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, symbol, type, units, unit_price, status, created_at
		FROM orders
		WHERE account_id = ? AND status = ?
		ORDER BY created_at ASC, rowid ASC
	`, accountID, model.OrderStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders table: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		var createdAtStr string

		if err := rows.Scan(&o.ID, &o.AccountID, &o.Symbol, &o.Type, &o.Units, &o.UnitPrice, &o.Status, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan orders table results: %w", err)
		}

		o.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders table: %w", err)
	}

	return orders, nil
}

// InsertOrder stores a new order.
func (r *OrderRepository) InsertOrder(ctx context.Context, o *model.Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, account_id, symbol, type, units, unit_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.AccountID, o.Symbol, o.Type, o.Units, o.UnitPrice, o.Status, o.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}
