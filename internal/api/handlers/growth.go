package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/request"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/response"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/service"
)

// GrowthHandler handles HTTP requests for growth series and change windows.
type GrowthHandler struct {
	growthService *service.GrowthService
	now           func() time.Time
}

// NewGrowthHandler creates a new GrowthHandler. "Today" defaults to the wall clock.
func NewGrowthHandler(growthService *service.GrowthService) *GrowthHandler {
	return &GrowthHandler{
		growthService: growthService,
		now:           time.Now,
	}
}

// Growth handles GET requests for the per-asset and portfolio growth series of an account.
// Both series run through the day before today.
//
// Endpoint: GET /api/account/{uuid}/growth
// Query Parameters:
//   - today: Optional YYYY-MM-DD date the series is computed as of (defaults to the current UTC day)
//
// Response: 200 OK with {assets, portfolio, skipped}
// Error: 400 Bad Request if today is malformed
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if computation fails
func (h *GrowthHandler) Growth(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	today, err := request.ParseToday(r.URL.Query().Get("today"), h.now())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), err.Error())
		return
	}

	result, err := h.growthService.GetGrowth(r.Context(), accountID, today)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeGrowth.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Changes handles GET requests for the lookback change windows of an account.
// Windows without a data point at or before their boundary are null.
//
// Endpoint: GET /api/account/{uuid}/changes
// Query Parameters:
//   - today: Optional YYYY-MM-DD reference date
//
// Response: 200 OK with map of window name to {value, valuePercent} or null
// Error: 400 Bad Request if today is malformed
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if computation fails
func (h *GrowthHandler) Changes(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	today, err := request.ParseToday(r.URL.Query().Get("today"), h.now())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), err.Error())
		return
	}

	windows, err := h.growthService.GetChangeWindows(r.Context(), accountID, today)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeGrowth.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, windows)
}
