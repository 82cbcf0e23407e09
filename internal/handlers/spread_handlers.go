package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/services"
)

// SpreadCalculator computes the calibrated spread for a snapshot time
type SpreadCalculator interface {
	Compute(ctx context.Context, now time.Time) (*models.CalibratedResponse, error)
}

// SpreadHandler handles the Brent/WTI calibration endpoint
type SpreadHandler struct {
	svc SpreadCalculator
	now func() time.Time
}

// NewSpreadHandler creates a new SpreadHandler
func NewSpreadHandler(svc SpreadCalculator) *SpreadHandler {
	return &SpreadHandler{
		svc: svc,
		now: time.Now,
	}
}

// GetCalibrated handles GET /api/brent-wti/calibrated
// @Summary Calibrated Brent/WTI spread
// @Description Live futures re-based by the smoothed EIA basis, daily and intraday history, and the resolution status of the tracked question
// @Tags spread
// @Produce json
// @Param as_of query string false "Snapshot date (YYYY-MM-DD or RFC3339); defaults to now. A past date replays from data published by then"
// @Success 200 {object} models.CalibratedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/brent-wti/calibrated [get]
func (h *SpreadHandler) GetCalibrated(c *gin.Context) {
	var req models.CalibratedSpreadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "as_of must be YYYY-MM-DD or RFC3339")
		return
	}

	now := h.now()
	if !req.AsOf.IsZero() {
		now = req.AsOf.Time
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.svc.Compute(ctx, now)
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}
