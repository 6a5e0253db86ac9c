package controller

import (
	"context"
	"log/slog"
	"time"

	"bitfolio/internal/ledger"
	"bitfolio/pkg/types/prices"
	"bitfolio/pkg/types/pubsub"
)

// PriceFeed is the part of the price feed service the API reads from.
type PriceFeed interface {
	Latest() (prices.Quote, error)
	Refresh(ctx context.Context) (prices.Quote, error)
	UpdatedAt() (time.Time, bool)
	SourceName() string
}

type Controller struct {
	ledger     *ledger.Ledger
	feed       PriceFeed
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

type Option func(*Controller)

func WithLedger(l *ledger.Ledger) Option {
	return func(c *Controller) {
		c.ledger = l
	}
}

func WithPriceFeed(f PriceFeed) Option {
	return func(c *Controller) {
		c.feed = f
	}
}

// WithPriceSubscriber enables the SSE price stream.
func WithPriceSubscriber(s pubsub.Subscriber) Option {
	return func(c *Controller) {
		c.subscriber = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ledger == nil {
		return nil, ErrNilLedger
	}
	if c.feed == nil {
		return nil, ErrNilPriceFeed
	}
	return c, nil
}
