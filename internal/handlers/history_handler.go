package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// HistoryHandler handles net worth history requests.
type HistoryHandler struct {
	historyService services.NetWorthHistoryServicer
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService services.NetWorthHistoryServicer) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// RecordSnapshotsRequest represents the request payload for recording history.
type RecordSnapshotsRequest struct {
	RecordedAt time.Time `json:"recorded_at" binding:"required"`
}

// RecordSnapshots handles computing and recording net worth snapshots.
// @Summary     Record net worth snapshots
// @Description Compute and record a net worth snapshot for every user (pipeline endpoint)
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key  header   string                  true "Pipeline API key"
// @Param       request    body     RecordSnapshotsRequest  true "Snapshot parameters"
// @Success     200        {object} map[string]int          "Snapshots recorded count"
// @Failure     400        {object} ErrorResponse           "Invalid input"
// @Failure     401        {object} ErrorResponse           "Invalid API key"
// @Failure     503        {object} ErrorResponse           "Pipeline not configured"
// @Router      /pipeline/net-worth/snapshots [post]
func (h *HistoryHandler) RecordSnapshots(c *gin.Context) {
	var req RecordSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.historyService.RecordSnapshots(req.RecordedAt.UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots_recorded": count})
}

// GetHistory handles retrieving net worth history for the authenticated user.
// @Summary     Get net worth history
// @Description Get paginated net worth snapshots for a date range, newest first
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string true  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string true  "End date (RFC3339 or YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.NetWorthSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /insights/net-worth/history [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fromStr := c.Query("from_date")
	if fromStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date is required"))
		return
	}
	from, err := parseFlexibleTime(fromStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	toStr := c.Query("to_date")
	if toStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date is required"))
		return
	}
	to, err := parseFlexibleTime(toStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if to.Before(from) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must not be before from_date"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.historyService.GetHistory(userID, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
