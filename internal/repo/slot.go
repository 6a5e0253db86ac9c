package repo

import (
	"context"

	"bitfolio/internal/ledger"

	"github.com/pkg/errors"
)

const DefaultSlotKey = "portfolio"

var _ ledger.Slot = (*SettingSlot)(nil)

// SettingSlot stores a ledger snapshot as a single settings row.
type SettingSlot struct {
	repo *Repository
	key  string
}

func NewSettingSlot(r *Repository, key string) (*SettingSlot, error) {
	if r == nil {
		return nil, ErrNilDatabase
	}
	if key == "" {
		key = DefaultSlotKey
	}
	return &SettingSlot{repo: r, key: key}, nil
}

func (s *SettingSlot) Key() string {
	return s.key
}

func (s *SettingSlot) Load(ctx context.Context) ([]byte, error) {
	setting, err := s.repo.GetSetting(ctx, s.key)
	if errors.Is(err, ErrSettingNotFound) {
		return nil, ledger.ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(setting.Value), nil
}

func (s *SettingSlot) Save(ctx context.Context, data []byte) error {
	return s.repo.PutSetting(ctx, s.key, string(data))
}
