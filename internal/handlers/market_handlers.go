package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/services"
)

// MarketQuoter serves FX and bond-yield quotes
type MarketQuoter interface {
	CurrencyRates(ctx context.Context, now time.Time) (*models.CurrencyRatesResponse, error)
	BundYield(ctx context.Context, now time.Time) (*models.BundYieldResponse, error)
}

// MarketHandler handles the auxiliary market quote endpoints
type MarketHandler struct {
	svc MarketQuoter
	now func() time.Time
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(svc MarketQuoter) *MarketHandler {
	return &MarketHandler{
		svc: svc,
		now: time.Now,
	}
}

// GetCurrencies handles GET /api/currencies
// @Summary USD currency rates
// @Description USD value of each tracked currency; individual quote failures are reported as warnings
// @Tags market
// @Produce json
// @Success 200 {object} models.CurrencyRatesResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/currencies [get]
func (h *MarketHandler) GetCurrencies(c *gin.Context) {
	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.svc.CurrencyRates(ctx, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// GetBundYield handles GET /api/bund-yield
// @Summary German 10Y yield
// @Description Latest daily yield on 10-year German federal securities from the Bundesbank
// @Tags market
// @Produce json
// @Success 200 {object} models.BundYieldResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/bund-yield [get]
func (h *MarketHandler) GetBundYield(c *gin.Context) {
	resp, err := h.svc.BundYield(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
