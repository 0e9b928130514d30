package handlers

import (
	"net/http"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/api/request"
	"github.com/mvermaat/stock-trade-tracker/internal/api/response"
	"github.com/mvermaat/stock-trade-tracker/internal/apperrors"
	"github.com/mvermaat/stock-trade-tracker/internal/service"
)

// AnalyticsHandler handles HTTP requests for the computed analytics
// endpoints. Everything it serves is derived on demand from the trade book
// (or, for history, from the materialized snapshot table).
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependency.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Positions handles GET requests for per-instrument positions.
//
// Endpoint: GET /api/analytics/positions?account={uuid}
// Response: 200 OK with instrument -> Position map
// Error: 400 Bad Request on invalid filter parameters
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Positions(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseAnalyticsFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	positions, err := h.analyticsService.GetPositions(filter.AccountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// PnL handles GET requests for the per-instrument P&L summary.
//
// Endpoint: GET /api/analytics/pnl?account={uuid}
// Response: 200 OK with Summary
// Error: 400 Bad Request on invalid filter parameters
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) PnL(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseAnalyticsFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	summary, err := h.analyticsService.GetSummary(filter.AccountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePnL.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Monthly handles GET requests for the monthly realized P&L breakdown.
// The start/end bounds filter which months are reported; the underlying fold
// always covers the whole history so cost bases stay correct.
//
// Endpoint: GET /api/analytics/monthly?start=YYYY-MM-DD&end=YYYY-MM-DD&account={uuid}
// Response: 200 OK with array of MonthlyPnL
// Error: 400 Bad Request on invalid filter parameters
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseAnalyticsFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	monthly, err := h.analyticsService.GetMonthly(filter.AccountID, filter.Start, filter.End)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePnL.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, monthly)
}

// Outcomes handles GET requests for win/loss outcome statistics.
//
// Endpoint: GET /api/analytics/outcomes?account={uuid}
// Response: 200 OK with OutcomeStats
// Error: 400 Bad Request on invalid filter parameters
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Outcomes(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseAnalyticsFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	outcomes, err := h.analyticsService.GetOutcomes(filter.AccountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeOutcomes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, outcomes)
}

// Overview handles GET requests for the dashboard payload combining
// accounts, positions, P&L and outcome statistics.
//
// Endpoint: GET /api/analytics/overview?account={uuid}
// Response: 200 OK with Overview
// Error: 400 Bad Request on invalid filter parameters
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseAnalyticsFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	overview, err := h.analyticsService.GetOverview(r.Context(), filter.AccountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePnL.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}

// History handles GET requests for materialized daily analytics snapshots.
// Defaults to the trailing year when no range is given.
//
// Endpoint: GET /api/analytics/history?start=YYYY-MM-DD&end=YYYY-MM-DD
// Response: 200 OK with array of SnapshotHistory
// Error: 400 Bad Request on invalid filter parameters
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalyticsHandler) History(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseAnalyticsFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	start, end := filter.Start, filter.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if start.IsZero() {
		start = end.AddDate(-1, 0, 0)
	}

	history, err := h.analyticsService.GetHistory(start, end)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// RebuildSnapshot handles POST requests to rebuild today's analytics
// snapshot on demand. Guarded by the internal API-key middleware.
//
// Endpoint: POST /api/analytics/snapshot
// Response: 200 OK with the number of instrument rows written
// Error: 500 Internal Server Error if the rebuild fails
func (h *AnalyticsHandler) RebuildSnapshot(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.RebuildSnapshot(r.Context(), time.Now().UTC())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRebuildSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"instruments": rows})
}
