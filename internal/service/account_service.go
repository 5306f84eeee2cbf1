package service

import (
	"context"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependency.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccounts retrieves all accounts.
func (s *AccountService) GetAccounts(ctx context.Context) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(ctx)
}

// GetAccount retrieves a single account.
// Returns apperrors.ErrAccountNotFound if it does not exist.
func (s *AccountService) GetAccount(ctx context.Context, accountID string) (model.Account, error) {
	return s.accountRepo.GetAccount(ctx, accountID)
}
