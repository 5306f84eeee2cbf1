package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
)

// HoldingsService derives current positions from an account's ledger and open orders.
type HoldingsService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	orderRepo       *repository.OrderRepository
}

// NewHoldingsService creates a new HoldingsService with the provided repository dependencies.
func NewHoldingsService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	orderRepo *repository.OrderRepository,
) *HoldingsService {
	return &HoldingsService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		orderRepo:       orderRepo,
	}
}

// GetHoldings returns the open positions of an account, sorted by symbol.
//
// A symbol whose ledger contains an invalid record is logged and left out; the other
// holdings are still returned.
func (s *HoldingsService) GetHoldings(ctx context.Context, accountID string) ([]model.Holding, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	orders, err := s.orderRepo.GetOpenOrders(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveOrders, err)
	}

	holdings, err := ledger.ComputeHoldings(transactions, orders)
	if err != nil {
		logLedgerErrors(accountID, err)
	}

	return holdings, nil
}
