package controller

import (
	"net/http"

	"bitfolio/internal/ledger"
	"bitfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	ErrNilLedger    = errors.New("ledger cannot be nil")
	ErrNilPriceFeed = errors.New("price feed cannot be nil")
)

type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func errorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, APIError{Error: message})
}

func errorWithDetails(ctx *gin.Context, status int, message string, details string) {
	ctx.JSON(status, APIError{Error: message, Details: details})
}

func badRequest(ctx *gin.Context, message string) {
	errorResponse(ctx, http.StatusBadRequest, message)
}

func badRequestWithDetails(ctx *gin.Context, message string, details string) {
	errorWithDetails(ctx, http.StatusBadRequest, message, details)
}

func internalError(ctx *gin.Context, message string) {
	errorResponse(ctx, http.StatusInternalServerError, message)
}

func serviceUnavailable(ctx *gin.Context, message string, details string) {
	errorWithDetails(ctx, http.StatusServiceUnavailable, message, details)
}

// ledgerError maps a rejected or failed ledger operation onto a response.
func (c *Controller) ledgerError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		badRequestWithDetails(ctx, "Invalid amount", err.Error())
	case errors.Is(err, ledger.ErrInvalidPrice):
		badRequestWithDetails(ctx, "Invalid price", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		errorWithDetails(ctx, http.StatusUnprocessableEntity, "Insufficient funds", err.Error())
	case errors.Is(err, ledger.ErrInsufficientHoldings):
		errorWithDetails(ctx, http.StatusUnprocessableEntity, "Insufficient holdings", err.Error())
	case errors.Is(err, service.ErrNoQuote):
		serviceUnavailable(ctx, "Price not available yet", err.Error())
	default:
		c.logger.Error("ledger operation failed", "error", err)
		internalError(ctx, "Failed to update portfolio")
	}
}
