package ledger

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrSlotEmpty is returned by Slot.Load when nothing was ever saved.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is the single named location the ledger persists into.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

var _ Slot = (*MemorySlot)(nil)

type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemorySlot) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}
