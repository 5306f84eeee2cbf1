package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves all accounts ordered by name.
// Returns an empty slice when no accounts exist.
func (r *AccountRepository) GetAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, starting_cash, created_at
		FROM account
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single account by ID.
// Returns apperrors.ErrAccountNotFound if no account has that ID.
func (r *AccountRepository) GetAccount(ctx context.Context, accountID string) (model.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, starting_cash, created_at
		FROM account
		WHERE id = ?
	`, accountID)

	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	return a, err
}

// InsertAccount stores a new account.
func (r *AccountRepository) InsertAccount(ctx context.Context, a *model.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO account (id, name, starting_cash, created_at)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Name, a.StartingCash, a.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (model.Account, error) {
	var a model.Account
	var createdAtStr string

	if err := s.Scan(&a.ID, &a.Name, &a.StartingCash, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to scan account: %w", err)
	}

	createdAt, err := ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	a.CreatedAt = createdAt

	return a, nil
}
