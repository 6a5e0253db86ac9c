package controller

import (
	"math"
	"net/http"
	"strconv"

	"bitfolio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultTransactionLimit = 20
	maxTransactionLimit     = 100
)

type PortfolioResponse struct {
	CashBalance          float64              `json:"cash_balance"`
	AssetHoldings        float64              `json:"asset_holdings"`
	InitialBalance       float64              `json:"initial_balance"`
	TransactionCount     int                  `json:"transaction_count"`
	RecentTransactions   []models.Transaction `json:"recent_transactions"`
	CurrentPrice         *float64             `json:"current_price,omitempty"`
	TotalValue           *float64             `json:"total_value,omitempty"`
	ProfitLoss           *float64             `json:"profit_loss,omitempty"`
	ProfitLossPercentage *float64             `json:"profit_loss_percentage,omitempty"`
}

type BuyRequest struct {
	FiatAmount float64  `json:"fiat_amount"`
	Price      *float64 `json:"price,omitempty"`
}

// SellRequest takes exactly one of AssetAmount (BTC) or FiatAmount (USD).
type SellRequest struct {
	AssetAmount *float64 `json:"asset_amount,omitempty"`
	FiatAmount  *float64 `json:"fiat_amount,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

type TradeResponse struct {
	Transaction models.Transaction `json:"transaction"`
	Portfolio   PortfolioResponse  `json:"portfolio"`
}

type ValueResponse struct {
	Price         float64 `json:"price"`
	Value         float64 `json:"value"`
	CashBalance   float64 `json:"cash_balance"`
	AssetHoldings float64 `json:"asset_holdings"`
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

const recentTransactions = 5

func (c *Controller) portfolioResponse(state models.PortfolioState) PortfolioResponse {
	recent := state.Transactions
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}

	resp := PortfolioResponse{
		CashBalance:        state.CashBalance,
		AssetHoldings:      state.AssetHoldings,
		InitialBalance:     c.ledger.InitialBalance(),
		TransactionCount:   len(state.Transactions),
		RecentTransactions: recent,
	}

	quote, err := c.feed.Latest()
	if err != nil {
		return resp
	}

	price := quote.CurrentPrice
	value := decimal.NewFromFloat(state.CashBalance).
		Add(decimal.NewFromFloat(state.AssetHoldings).Mul(decimal.NewFromFloat(price)))
	initial := decimal.NewFromFloat(resp.InitialBalance)
	pl := value.Sub(initial)

	totalValue := value.InexactFloat64()
	profitLoss := pl.InexactFloat64()
	resp.CurrentPrice = &price
	resp.TotalValue = &totalValue
	resp.ProfitLoss = &profitLoss
	if initial.IsPositive() {
		pct := pl.Div(initial).Mul(decimal.NewFromInt(100)).InexactFloat64()
		resp.ProfitLossPercentage = &pct
	}
	return resp
}

// resolvePrice returns the explicit price when given, else the latest quote.
func (c *Controller) resolvePrice(explicit *float64) (float64, error) {
	if explicit != nil {
		return *explicit, nil
	}
	quote, err := c.feed.Latest()
	if err != nil {
		return 0, err
	}
	return quote.CurrentPrice, nil
}

// GetPortfolio godoc
// @Summary Get portfolio
// @Description Cash balance, BTC holdings, recent transactions and, once a price is known, the total value and profit/loss
// @Tags portfolio
// @Produce json
// @Success 200 {object} PortfolioResponse
// @Router /api/portfolio [get]
func (c *Controller) GetPortfolio(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.portfolioResponse(c.ledger.State()))
}

// Buy godoc
// @Summary Buy bitcoin
// @Description Spend fiat_amount USD on BTC at the given price or the latest quote
// @Tags portfolio
// @Accept json
// @Produce json
// @Param trade body BuyRequest true "Buy order"
// @Success 201 {object} TradeResponse
// @Failure 400 {object} APIError
// @Failure 422 {object} APIError
// @Failure 503 {object} APIError
// @Router /api/portfolio/buy [post]
func (c *Controller) Buy(ctx *gin.Context) {
	var req BuyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestWithDetails(ctx, "Invalid input", err.Error())
		return
	}

	price, err := c.resolvePrice(req.Price)
	if err != nil {
		c.ledgerError(ctx, err)
		return
	}

	tx, err := c.ledger.ExecuteBuy(ctx.Request.Context(), req.FiatAmount, price)
	if err != nil {
		c.ledgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, TradeResponse{
		Transaction: tx,
		Portfolio:   c.portfolioResponse(c.ledger.State()),
	})
}

// Sell godoc
// @Summary Sell bitcoin
// @Description Sell asset_amount BTC, or the BTC worth fiat_amount USD, at the given price or the latest quote
// @Tags portfolio
// @Accept json
// @Produce json
// @Param trade body SellRequest true "Sell order"
// @Success 201 {object} TradeResponse
// @Failure 400 {object} APIError
// @Failure 422 {object} APIError
// @Failure 503 {object} APIError
// @Router /api/portfolio/sell [post]
func (c *Controller) Sell(ctx *gin.Context) {
	var req SellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestWithDetails(ctx, "Invalid input", err.Error())
		return
	}
	if (req.AssetAmount == nil) == (req.FiatAmount == nil) {
		badRequest(ctx, "Exactly one of asset_amount or fiat_amount is required")
		return
	}

	price, err := c.resolvePrice(req.Price)
	if err != nil {
		c.ledgerError(ctx, err)
		return
	}

	var tx models.Transaction
	if req.AssetAmount != nil {
		tx, err = c.ledger.ExecuteSell(ctx.Request.Context(), *req.AssetAmount, price)
	} else {
		tx, err = c.ledger.ExecuteSellValue(ctx.Request.Context(), *req.FiatAmount, price)
	}
	if err != nil {
		c.ledgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, TradeResponse{
		Transaction: tx,
		Portfolio:   c.portfolioResponse(c.ledger.State()),
	})
}

// ResetPortfolio godoc
// @Summary Reset portfolio
// @Description Restore the initial cash balance and clear holdings and history
// @Tags portfolio
// @Produce json
// @Success 200 {object} PortfolioResponse
// @Failure 500 {object} APIError
// @Router /api/portfolio/reset [post]
func (c *Controller) ResetPortfolio(ctx *gin.Context) {
	if err := c.ledger.Reset(ctx.Request.Context()); err != nil {
		c.ledgerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.portfolioResponse(c.ledger.State()))
}

// GetValue godoc
// @Summary Get portfolio value
// @Description Cash plus holdings valued at the price query parameter or the latest quote
// @Tags portfolio
// @Produce json
// @Param price query number false "BTC price in USD"
// @Success 200 {object} ValueResponse
// @Failure 400 {object} APIError
// @Failure 503 {object} APIError
// @Router /api/portfolio/value [get]
func (c *Controller) GetValue(ctx *gin.Context) {
	var explicit *float64
	if priceStr := ctx.Query("price"); priceStr != "" {
		p, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || !(p > 0) || math.IsInf(p, 1) {
			badRequest(ctx, "Invalid price")
			return
		}
		explicit = &p
	}

	price, err := c.resolvePrice(explicit)
	if err != nil {
		c.ledgerError(ctx, err)
		return
	}

	state := c.ledger.State()
	ctx.JSON(http.StatusOK, ValueResponse{
		Price:         price,
		Value:         c.ledger.CalculatePortfolioValue(price),
		CashBalance:   state.CashBalance,
		AssetHoldings: state.AssetHoldings,
	})
}

// ListTransactions godoc
// @Summary List transactions
// @Description Transactions newest first, paged with limit and offset
// @Tags portfolio
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of transactions to skip"
// @Success 200 {object} TransactionListResult
// @Router /api/portfolio/transactions [get]
func (c *Controller) ListTransactions(ctx *gin.Context) {
	limit := defaultTransactionLimit
	offset := 0

	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxTransactionLimit)
		}
	}
	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o > 0 {
			offset = o
		}
	}

	txs := c.ledger.State().Transactions
	total := len(txs)
	start := min(offset, total)
	end := min(start+limit, total)

	ctx.JSON(http.StatusOK, TransactionListResult{
		Transactions: txs[start:end],
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}
