package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bitfolio/pkg/types/scheduler"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSchedulerConfig = errors.New("invalid scheduler config")
	ErrAlreadyStarted         = errors.New("scheduler already started")
)

var _ scheduler.Scheduler = (*Scheduler)(nil)

// Scheduler runs handler every interval until its context is done or Stop is
// called. A failing handler is logged and retried on the next tick.
type Scheduler struct {
	name     string
	interval time.Duration
	ctx      context.Context
	logger   *slog.Logger
	handler  func() error

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
}

type Option func(*Scheduler)

func WithName(name string) Option {
	return func(s *Scheduler) {
		s.name = name
	}
}

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = d
	}
}

func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) {
		s.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

func WithHandler(h func() error) Option {
	return func(s *Scheduler) {
		s.handler = h
	}
}

func (s *Scheduler) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "logger cannot be nil")
	case s.interval <= 0:
		return errors.Wrap(ErrInvalidSchedulerConfig, "interval must be positive")
	case s.handler == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "handler cannot be nil")
	default:
		return nil
	}
}

func New(opts ...Option) (*Scheduler, error) {
	s := &Scheduler{name: "scheduler"}

	for _, opt := range opts {
		opt(s)
	}

	return s, s.IsValid()
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) Start() error {
	if err := s.IsValid(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.Wrap(ErrAlreadyStarted, s.name)
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.handler(); err != nil {
					s.logger.Error("scheduler handler error", "name", s.name, "interval", s.interval, "error", err)
				}
			case <-s.stop:
				return
			case <-s.ctx.Done():
				return
			}
		}
	}()

	s.logger.Debug("scheduler started", "name", s.name, "interval", s.interval)
	return nil
}

// Stop halts the ticker and waits for an in-flight handler to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	close(s.stop)
	<-s.done
	s.started = false
}
