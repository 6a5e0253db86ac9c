package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetBTCQuote godoc
// @Summary Get BTC quote
// @Description Latest BTC/USD price with 24h change, high, low and hourly history
// @Tags prices
// @Produce json
// @Success 200 {object} prices.Quote
// @Failure 503 {object} APIError
// @Router /api/prices/btc [get]
func (c *Controller) GetBTCQuote(ctx *gin.Context) {
	quote, err := c.feed.Latest()
	if err != nil {
		serviceUnavailable(ctx, "Price not available yet", err.Error())
		return
	}
	ctx.JSON(http.StatusOK, quote)
}

// RefreshPrices godoc
// @Summary Refresh BTC quote
// @Description Fetch a new quote from the price source now
// @Tags prices
// @Produce json
// @Success 200 {object} prices.Quote
// @Failure 502 {object} APIError
// @Router /api/prices/refresh [post]
func (c *Controller) RefreshPrices(ctx *gin.Context) {
	quote, err := c.feed.Refresh(ctx.Request.Context())
	if err != nil {
		c.logger.Warn("manual price refresh failed", "source", c.feed.SourceName(), "error", err)
		errorWithDetails(ctx, http.StatusBadGateway, "Failed to refresh prices", err.Error())
		return
	}
	ctx.JSON(http.StatusOK, quote)
}

type HealthResponse struct {
	Status         string     `json:"status"`
	PriceSource    string     `json:"price_source"`
	QuoteReady     bool       `json:"quote_ready"`
	QuoteUpdatedAt *time.Time `json:"quote_updated_at,omitempty"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (c *Controller) Health(ctx *gin.Context) {
	_, err := c.feed.Latest()
	resp := HealthResponse{
		Status:      "ok",
		PriceSource: c.feed.SourceName(),
		QuoteReady:  err == nil,
	}
	if at, ok := c.feed.UpdatedAt(); ok {
		resp.QuoteUpdatedAt = &at
	}
	ctx.JSON(http.StatusOK, resp)
}
