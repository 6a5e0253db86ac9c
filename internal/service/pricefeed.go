package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	tickerScheduler "bitfolio/pkg/integrations/scheduler"
	"bitfolio/pkg/types/cache"
	"bitfolio/pkg/types/prices"
	"bitfolio/pkg/types/pubsub"
	"bitfolio/pkg/types/scheduler"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPriceFeedConfig = errors.New("invalid price feed config")
	ErrNoQuote                = errors.New("no quote available yet")
)

const quoteTimeout = 15 * time.Second

// RefreshObserver is told about every refresh attempt.
type RefreshObserver interface {
	QuoteRefreshed(source string, price float64, err error)
}

// PriceFeedService keeps the latest BTC quote in a cache, refreshes it on a
// fixed interval and publishes every fresh quote as JSON.
type PriceFeedService struct {
	ctx       context.Context
	logger    *slog.Logger
	cache     cache.Cache[string, prices.Quote]
	source    prices.Source
	publisher pubsub.Publisher
	observer  RefreshObserver
	interval  time.Duration
	scheduler scheduler.Scheduler

	refreshMu sync.Mutex
	errMu     sync.RWMutex
	lastErr   error
}

type PriceFeedOption func(*PriceFeedService)

func WithPriceFeedContext(ctx context.Context) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.ctx = ctx
	}
}

func WithPriceFeedLogger(l *slog.Logger) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.logger = l
	}
}

func WithPriceFeedCache(c cache.Cache[string, prices.Quote]) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.cache = c
	}
}

func WithPriceFeedSource(src prices.Source) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.source = src
	}
}

func WithPriceFeedPublisher(p pubsub.Publisher) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.publisher = p
	}
}

func WithPriceFeedObserver(o RefreshObserver) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.observer = o
	}
}

func WithPriceFeedInterval(d time.Duration) PriceFeedOption {
	return func(s *PriceFeedService) {
		s.interval = d
	}
}

func (s *PriceFeedService) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidPriceFeedConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidPriceFeedConfig, "logger cannot be nil")
	case s.cache == nil:
		return errors.Wrap(ErrInvalidPriceFeedConfig, "cache cannot be nil")
	case s.source == nil:
		return errors.Wrap(ErrInvalidPriceFeedConfig, "source cannot be nil")
	case s.publisher == nil:
		return errors.Wrap(ErrInvalidPriceFeedConfig, "publisher cannot be nil")
	case s.interval <= 0:
		return errors.Wrap(ErrInvalidPriceFeedConfig, "interval must be positive")
	default:
		return nil
	}
}

func NewPriceFeedService(opts ...PriceFeedOption) (*PriceFeedService, error) {
	s := &PriceFeedService{
		interval: scheduler.DefaultPriceRefresh,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.IsValid(); err != nil {
		return nil, err
	}

	sched, err := tickerScheduler.New(
		tickerScheduler.WithName("price-feed"),
		tickerScheduler.WithContext(s.ctx),
		tickerScheduler.WithLogger(s.logger),
		tickerScheduler.WithInterval(s.interval),
		tickerScheduler.WithHandler(s.tick),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}
	s.scheduler = sched

	return s, nil
}

// Start fetches a first quote and then refreshes on every interval. A failed
// first fetch is logged and retried on the next tick.
func (s *PriceFeedService) Start() error {
	if err := s.tick(); err != nil {
		s.logger.Error("initial price fetch failed", "source", s.source.Name(), "error", err)
	}

	return s.scheduler.Start()
}

func (s *PriceFeedService) Stop() {
	s.scheduler.Stop()
}

func (s *PriceFeedService) Interval() time.Duration {
	return s.interval
}

func (s *PriceFeedService) SourceName() string {
	return s.source.Name()
}

// Latest returns the most recent quote, or ErrNoQuote before the first
// successful fetch.
func (s *PriceFeedService) Latest() (prices.Quote, error) {
	q, ok := s.cache.Get(prices.SymbolBTC)
	if !ok {
		if err := s.LastError(); err != nil {
			return prices.Quote{}, errors.Wrap(ErrNoQuote, err.Error())
		}
		return prices.Quote{}, ErrNoQuote
	}
	return q, nil
}

// UpdatedAt is when the cached quote was last written. It does not move
// when a refresh fails, so callers can tell how stale Latest is.
func (s *PriceFeedService) UpdatedAt() (time.Time, bool) {
	return s.cache.UpdatedAt(prices.SymbolBTC)
}

// LastError is the error of the most recent refresh, nil if it succeeded.
func (s *PriceFeedService) LastError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()
	return s.lastErr
}

// Refresh fetches a quote now. Concurrent calls are serialized.
func (s *PriceFeedService) Refresh(ctx context.Context) (prices.Quote, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	q, err := s.source.Quote(ctx)
	s.setLastError(err)
	if s.observer != nil {
		s.observer.QuoteRefreshed(s.source.Name(), q.CurrentPrice, err)
	}
	if err != nil {
		return prices.Quote{}, errors.Wrapf(err, "failed to fetch quote from %s", s.source.Name())
	}

	s.cache.Set(prices.SymbolBTC, q)

	data, err := json.Marshal(q)
	if err != nil {
		return q, errors.Wrap(err, "failed to marshal quote")
	}
	if err := s.publisher.Publish(data); err != nil {
		s.logger.Warn("failed to publish quote", "error", err)
	}

	s.logger.Debug("refreshed quote",
		"source", q.Source,
		"price", q.CurrentPrice,
		"change_24h_pct", q.Change24hPercentage,
	)
	return q, nil
}

func (s *PriceFeedService) tick() error {
	_, err := s.Refresh(s.ctx)
	return err
}

func (s *PriceFeedService) setLastError(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	s.lastErr = err
}
