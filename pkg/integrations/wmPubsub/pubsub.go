package wmPubsub

import (
	"context"
	"log/slog"
	"sync"

	"bitfolio/pkg/types/pubsub"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPubSubConfig = errors.New("invalid pubsub config")
	ErrClosed              = errors.New("pubsub closed")
)

var _ pubsub.PubSub = (*PubSub)(nil)

const defaultBuffer = 10

// PubSub fans every published message out to all current subscribers. A
// subscriber that falls behind loses messages instead of blocking publishers.
type PubSub struct {
	topic  string
	buffer int
	ctx    context.Context
	logger *slog.Logger

	mu     sync.Mutex
	subs   map[int]chan []byte
	nextID int
	closed bool
}

type Option func(*PubSub)

func WithContext(ctx context.Context) Option {
	return func(ps *PubSub) {
		ps.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(ps *PubSub) {
		ps.logger = l
	}
}

func WithTopic(topic string) Option {
	return func(ps *PubSub) {
		ps.topic = topic
	}
}

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer(n int) Option {
	return func(ps *PubSub) {
		ps.buffer = n
	}
}

func (ps *PubSub) IsValid() error {
	switch {
	case ps.ctx == nil:
		return errors.Wrap(ErrInvalidPubSubConfig, "ctx cannot be nil")
	case ps.logger == nil:
		return errors.Wrap(ErrInvalidPubSubConfig, "logger cannot be nil")
	case ps.topic == "":
		return errors.Wrap(ErrInvalidPubSubConfig, "topic cannot be empty")
	case ps.buffer <= 0:
		return errors.Wrap(ErrInvalidPubSubConfig, "buffer must be positive")
	default:
		return nil
	}
}

func New(opts ...Option) (*PubSub, error) {
	ps := &PubSub{
		buffer: defaultBuffer,
		subs:   make(map[int]chan []byte),
	}

	for _, opt := range opts {
		opt(ps)
	}

	if err := ps.IsValid(); err != nil {
		return nil, err
	}

	go func() {
		<-ps.ctx.Done()
		ps.Close()
	}()

	return ps, nil
}

func (ps *PubSub) Publish(payload []byte) error {
	if err := ps.ctx.Err(); err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return ErrClosed
	}

	for id, ch := range ps.subs {
		select {
		case ch <- payload:
		default:
			ps.logger.Warn("subscriber full, dropping message", "topic", ps.topic, "subscriber", id)
		}
	}
	return nil
}

func (ps *PubSub) Subscribe() (<-chan []byte, func(), error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return nil, nil, ErrClosed
	}

	id := ps.nextID
	ps.nextID++
	ch := make(chan []byte, ps.buffer)
	ps.subs[id] = ch
	ps.logger.Debug("subscriber added", "topic", ps.topic, "subscriber", id, "total", len(ps.subs))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			ps.mu.Lock()
			defer ps.mu.Unlock()
			if sub, ok := ps.subs[id]; ok {
				delete(ps.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel, nil
}

func (ps *PubSub) Subscribers() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.subs)
}

// Close ends every subscription. Later publishes fail with ErrClosed.
func (ps *PubSub) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return
	}
	ps.closed = true
	for id, ch := range ps.subs {
		delete(ps.subs, id)
		close(ch)
	}
}
