package handler

import (
	"errors"
	"log/slog"

	"bitfolio/internal/controller"
	"bitfolio/internal/ledger"
	"bitfolio/internal/metrics"
	"bitfolio/pkg/types/pubsub"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	ErrNilEngine    = errors.New("engine is required")
	ErrNilLedger    = errors.New("ledger is required")
	ErrNilPriceFeed = errors.New("price feed is required")
)

type Handler struct {
	engine     *gin.Engine
	ledger     *ledger.Ledger
	feed       controller.PriceFeed
	subscriber pubsub.Subscriber
	metrics    *metrics.Metrics
	logger     *slog.Logger
	swagger    bool
}

func (h *Handler) IsValid() error {
	if h.engine == nil {
		return ErrNilEngine
	}
	if h.ledger == nil {
		return ErrNilLedger
	}
	if h.feed == nil {
		return ErrNilPriceFeed
	}
	return nil
}

type Option func(*Handler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithLedger(l *ledger.Ledger) Option {
	return func(h *Handler) {
		h.ledger = l
	}
}

func WithPriceFeed(f controller.PriceFeed) Option {
	return func(h *Handler) {
		h.feed = f
	}
}

func WithPriceSubscriber(s pubsub.Subscriber) Option {
	return func(h *Handler) {
		h.subscriber = s
	}
}

// WithMetrics instruments every route and serves /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

func WithSwagger(enabled bool) Option {
	return func(h *Handler) {
		h.swagger = enabled
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Setup() error {
	ctrl, err := controller.New(
		controller.WithLedger(h.ledger),
		controller.WithPriceFeed(h.feed),
		controller.WithPriceSubscriber(h.subscriber),
		controller.WithLogger(h.logger),
	)
	if err != nil {
		return err
	}

	if h.metrics != nil {
		h.engine.Use(h.metrics.Middleware())
		h.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})))
	}
	if h.swagger {
		h.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := h.engine.Group("/api")
	api.GET("/health", ctrl.Health)

	portfolio := api.Group("/portfolio")
	portfolio.GET("", ctrl.GetPortfolio)
	portfolio.POST("/buy", ctrl.Buy)
	portfolio.POST("/sell", ctrl.Sell)
	portfolio.POST("/reset", ctrl.ResetPortfolio)
	portfolio.GET("/value", ctrl.GetValue)
	portfolio.GET("/transactions", ctrl.ListTransactions)

	prices := api.Group("/prices")
	prices.GET("/btc", ctrl.GetBTCQuote)
	prices.POST("/refresh", ctrl.RefreshPrices)
	if h.subscriber != nil {
		prices.GET("/stream", ctrl.StreamPrices)
	}

	return nil
}
