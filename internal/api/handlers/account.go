package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/response"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/service"
)

// AccountHandler handles HTTP requests for account endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the account and holdings services.
type AccountHandler struct {
	accountService  *service.AccountService
	holdingsService *service.HoldingsService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependencies.
func NewAccountHandler(accountService *service.AccountService, holdingsService *service.HoldingsService) *AccountHandler {
	return &AccountHandler{
		accountService:  accountService,
		holdingsService: holdingsService,
	}
}

// Accounts handles GET requests to list all accounts.
//
// Endpoint: GET /api/account
// Response: 200 OK with array of Account
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.GetAccounts(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET requests to retrieve a single account.
//
// Endpoint: GET /api/account/{uuid}
// Response: 200 OK with Account
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	account, err := h.accountService.GetAccount(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAccounts.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// Holdings handles GET requests for the current positions of an account.
// Units reserved by open sell orders are reported per holding.
//
// Endpoint: GET /api/account/{uuid}/holdings
// Response: 200 OK with array of Holding, sorted by symbol
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	holdings, err := h.holdingsService.GetHoldings(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve holdings")
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}
