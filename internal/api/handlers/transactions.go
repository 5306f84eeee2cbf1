package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/request"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/response"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/service"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/validation"
)

// TransactionHandler handles HTTP requests for ledger endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions handles GET requests to retrieve the ledger of an account in replay order.
//
// Endpoint: GET /api/account/{uuid}/transactions
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	transactions, err := h.transactionService.GetTransactions(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST requests to append a BUY or SELL to an account ledger.
// Realized return fields of a SELL are computed by the server.
//
// Endpoint: POST /api/account/{uuid}/transactions
// Request Body: CreateTransactionRequest (symbol, symbolType, sector, date, type, units, unitPrice, fees)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if the body is invalid or the record would break the ledger
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), accountID, req)
	if err != nil {
		respondServiceError(w, err, "failed to create transaction")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}
