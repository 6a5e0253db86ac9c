package metrics

import (
	"strconv"
	"time"

	"bitfolio/internal/ledger"
	"bitfolio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bitfolio"

// Metrics holds the Prometheus collectors for the process. Collectors are
// registered on Registry rather than the global default so several instances
// can coexist.
type Metrics struct {
	Registry *prometheus.Registry

	TradesTotal      *prometheus.CounterVec
	TradeVolumeUSD   *prometheus.CounterVec
	RejectionsTotal  *prometheus.CounterVec
	QuoteRefreshes   *prometheus.CounterVec
	BTCPrice         prometheus.Gauge
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		TradesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "trades_total",
				Help:      "Total number of executed trades",
			},
			[]string{"kind"},
		),
		TradeVolumeUSD: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "trade_volume_usd_total",
				Help:      "Total USD value of executed trades",
			},
			[]string{"kind"},
		),
		RejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "rejections_total",
				Help:      "Total number of rejected trades",
			},
			[]string{"kind", "reason"},
		),
		QuoteRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "prices",
				Name:      "refreshes_total",
				Help:      "Total number of price source refreshes",
			},
			[]string{"source", "status"},
		),
		BTCPrice: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "prices",
				Name:      "btc_usd",
				Help:      "Latest BTC price in USD",
			},
		),
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
	}
}

// TradeExecuted implements ledger.Observer.
func (m *Metrics) TradeExecuted(tx models.Transaction) {
	m.TradesTotal.WithLabelValues(string(tx.Kind)).Inc()
	m.TradeVolumeUSD.WithLabelValues(string(tx.Kind)).Add(tx.FiatAmount)
}

// TradeRejected implements ledger.Observer.
func (m *Metrics) TradeRejected(kind models.TransactionKind, err error) {
	m.RejectionsTotal.WithLabelValues(string(kind), RejectionReason(err)).Inc()
}

// QuoteRefreshed records one price source round trip.
func (m *Metrics) QuoteRefreshed(source string, price float64, err error) {
	if err != nil {
		m.QuoteRefreshes.WithLabelValues(source, "error").Inc()
		return
	}
	m.QuoteRefreshes.WithLabelValues(source, "ok").Inc()
	m.BTCPrice.Set(price)
}

// RejectionReason maps a ledger error onto a low-cardinality label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ledger.ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrInsufficientHoldings):
		return "insufficient_holdings"
	default:
		return "internal"
	}
}

// Middleware records request count, latency and concurrency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
