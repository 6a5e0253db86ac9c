package mockprices

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bitfolio/pkg/types/prices"
)

var (
	_ prices.Source = (*Source)(nil)
)

const (
	basePriceMin   = 30000.0
	basePriceRange = 10000.0
	noiseRange     = 1000.0
	// drift adds one dollar per 100 seconds elapsed since the window start.
	driftDivisorMs = 100000.0
	window         = 24 * time.Hour
	step           = time.Hour
)

// Source invents a 24h hourly BTC history on every call.
type Source struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	now   func() time.Time
	delay time.Duration
}

type Option func(*Source)

func WithRand(r *rand.Rand) Option {
	return func(s *Source) {
		s.rnd = r
	}
}

func WithSeed(seed int64) Option {
	return func(s *Source) {
		s.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// WithDelay simulates network latency before each quote.
func WithDelay(d time.Duration) Option {
	return func(s *Source) {
		s.delay = d
	}
}

func NewSource(opts ...Option) *Source {
	s := &Source{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

func (s *Source) Name() string {
	return prices.SourceMock
}

func (s *Source) Quote(ctx context.Context) (prices.Quote, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return prices.Quote{}, ctx.Err()
		}
	}

	now := s.now()
	history := s.history(now)

	q, err := prices.NewQuote(prices.SymbolBTC, history)
	if err != nil {
		return prices.Quote{}, err
	}
	q.Source = s.Name()
	q.FetchedAt = now
	return q, nil
}

func (s *Source) history(now time.Time) []prices.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := now.Add(-window)
	base := basePriceMin + s.rnd.Float64()*basePriceRange

	points := make([]prices.Point, 0, int(window/step)+1)
	for at := start; !at.After(now); at = at.Add(step) {
		noise := (s.rnd.Float64() - 0.5) * noiseRange
		drift := float64(at.Sub(start).Milliseconds()) / driftDivisorMs
		points = append(points, prices.Point{
			Timestamp: at,
			Price:     base + noise + drift,
		})
	}
	return points
}
