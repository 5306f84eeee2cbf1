package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/request"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
)

// TransactionService handles ledger read and append operations.
type TransactionService struct {
	db               *sql.DB
	accountRepo      *repository.AccountRepository
	transactionRepo  *repository.TransactionRepository
	materializedRepo *repository.MaterializedRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	materializedRepo *repository.MaterializedRepository,
) *TransactionService {
	return &TransactionService{
		db:               db,
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		materializedRepo: materializedRepo,
	}
}

// GetTransactions retrieves the ledger of an account in replay order.
// Returns apperrors.ErrAccountNotFound if the account does not exist.
func (s *TransactionService) GetTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactions(ctx, accountID)
}

// CreateTransaction appends a BUY or SELL to an account ledger.
//
// The new record is placed after every existing record of the same date. Before it is
// stored the symbol's ledger is replayed with the record in place, so a SELL that exceeds
// the units held at that point, or one that would break a later SELL, is rejected. A
// record dated before an existing SELL of the same symbol is rejected with
// apperrors.ErrPredatesSale, since it would move the cost basis that SELL's realized
// return was fixed against.
//
// Reading the ledger, validating, inserting and dropping the account's materialized
// series happen in one database transaction, so concurrent appends are serialized and
// always validate against the latest ledger.
//
// For a SELL the realized return is fixed at this moment against the break-even price of
// the position as of the trade date:
//   - RealizedReturnValue = (unitPrice - breakEvenPrice) * units, 2 decimals
//   - RealizedReturnChange = growth rate of unitPrice over breakEvenPrice, 4 decimals
//
// Returns apperrors.ErrAccountNotFound, apperrors.ErrInvalidDate or a ledger validation
// error (see apperrors.IsLedgerValidation) when the record is rejected.
func (s *TransactionService) CreateTransaction(ctx context.Context, accountID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse(ledger.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidDate, err)
	}

	symbolType := strings.ToUpper(strings.TrimSpace(req.SymbolType))
	if symbolType == "" {
		symbolType = model.SymbolTypeStock
	}

	transaction := &model.Transaction{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Symbol:     strings.ToUpper(strings.TrimSpace(req.Symbol)),
		SymbolType: symbolType,
		Sector:     strings.TrimSpace(req.Sector),
		Date:       transactionDate,
		Type:       strings.ToUpper(strings.TrimSpace(req.Type)),
		Units:      req.Units,
		UnitPrice:  req.UnitPrice,
		Fees:       req.Fees,
		CreatedAt:  time.Now().UTC(),
	}

	if err := ledger.ValidateRecord(*transaction); err != nil {
		return nil, err
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = dbTx.Rollback()
	}()

	transactionRepo := s.transactionRepo.WithTx(dbTx)

	existing, err := transactionRepo.GetTransactions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	before, after := splitSymbolLedger(existing, transaction.Symbol, transaction.Date)

	candidate := make([]model.Transaction, 0, len(before)+1+len(after))
	candidate = append(candidate, before...)
	candidate = append(candidate, *transaction)
	candidate = append(candidate, after...)
	if _, err := ledger.ComputeHoldings(candidate, nil); err != nil {
		return nil, err
	}

	for _, later := range after {
		if later.Type == model.TransactionTypeSell {
			return nil, fmt.Errorf("%w: %s on %s", apperrors.ErrPredatesSale, later.Symbol, later.Date.Format(ledger.DateFormat))
		}
	}

	if transaction.Type == model.TransactionTypeSell {
		breakEven, err := breakEvenAt(before, transaction.Symbol)
		if err != nil {
			return nil, err
		}
		transaction.RealizedReturnValue = ledger.Round((transaction.UnitPrice-breakEven)*transaction.Units, ledger.MoneyPlaces)
		transaction.RealizedReturnChange = ledger.Round(ledger.GrowthRate(transaction.UnitPrice, breakEven), ledger.PercentPlaces)
	}

	if err := transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.materializedRepo.WithTx(dbTx).DeleteMaterializedGrowth(ctx, accountID); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// splitSymbolLedger returns the records of symbol dated on or before day, and those after.
// Relative order is preserved; the ledger is expected in replay order.
func splitSymbolLedger(transactions []model.Transaction, symbol string, day time.Time) (before, after []model.Transaction) {
	for _, tx := range transactions {
		if tx.Symbol != symbol {
			continue
		}
		if tx.Date.After(day) {
			after = append(after, tx)
		} else {
			before = append(before, tx)
		}
	}
	return before, after
}

// breakEvenAt replays a single-symbol ledger and returns its current break-even price,
// or 0 if no units are held.
func breakEvenAt(transactions []model.Transaction, symbol string) (float64, error) {
	holdings, err := ledger.ComputeHoldings(transactions, nil)
	if err != nil {
		return 0, err
	}
	for _, h := range holdings {
		if h.Symbol == symbol {
			return h.BreakEvenPrice, nil
		}
	}
	return 0, nil
}
