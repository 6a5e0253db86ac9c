package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitfolio/internal/ledger"
	"bitfolio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.BTCPrice.Set(1)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BTCPrice))
}

func TestTradeExecuted(t *testing.T) {
	m := New()
	m.TradeExecuted(models.Transaction{Kind: models.KindBuy, FiatAmount: 1000})
	m.TradeExecuted(models.Transaction{Kind: models.KindBuy, FiatAmount: 500})
	m.TradeExecuted(models.Transaction{Kind: models.KindSell, FiatAmount: 200})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TradesTotal.WithLabelValues("buy")))
	assert.Equal(t, 1500.0, testutil.ToFloat64(m.TradeVolumeUSD.WithLabelValues("buy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesTotal.WithLabelValues("sell")))
}

func TestTradeRejected(t *testing.T) {
	m := New()
	m.TradeRejected(models.KindBuy, errors.Wrap(ledger.ErrInsufficientFunds, "buy of 20000 USD"))
	m.TradeRejected(models.KindSell, ledger.ErrInsufficientHoldings)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectionsTotal.WithLabelValues("buy", "insufficient_funds")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectionsTotal.WithLabelValues("sell", "insufficient_holdings")))
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "invalid_amount", RejectionReason(ledger.ErrInvalidAmount))
	assert.Equal(t, "invalid_price", RejectionReason(ledger.ErrInvalidPrice))
	assert.Equal(t, "internal", RejectionReason(errors.New("disk full")))
}

func TestQuoteRefreshed(t *testing.T) {
	m := New()
	m.QuoteRefreshed("mock", 42000, nil)
	m.QuoteRefreshed("mock", 0, errors.New("timeout"))

	assert.Equal(t, 42000.0, testutil.ToFloat64(m.BTCPrice))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteRefreshes.WithLabelValues("mock", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteRefreshes.WithLabelValues("mock", "error")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/api/health", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	req, err = http.NewRequest(http.MethodGet, "/nope", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}
