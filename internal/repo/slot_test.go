package repo

import (
	"io"
	"log/slog"
	"testing"

	"bitfolio/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingSlot_LoadSave(t *testing.T) {
	repository, err := New(setupTestDB(t))
	require.NoError(t, err)

	slot, err := NewSettingSlot(repository, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSlotKey, slot.Key())

	_, err = slot.Load(t.Context())
	require.ErrorIs(t, err, ledger.ErrSlotEmpty)

	require.NoError(t, slot.Save(t.Context(), []byte("payload")))
	data, err := slot.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestSettingSlot_NilRepository(t *testing.T) {
	_, err := NewSettingSlot(nil, "portfolio")
	require.ErrorIs(t, err, ErrNilDatabase)
}

func TestSettingSlot_LedgerSurvivesReopen(t *testing.T) {
	repository, err := New(setupTestDB(t))
	require.NoError(t, err)
	slot, err := NewSettingSlot(repository, "session")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := ledger.New(t.Context(), ledger.WithSlot(slot), ledger.WithLogger(logger))
	require.NoError(t, err)
	_, err = first.ExecuteBuy(t.Context(), 1000, 50000)
	require.NoError(t, err)
	_, err = first.ExecuteSell(t.Context(), 0.01, 60000)
	require.NoError(t, err)

	second, err := ledger.New(t.Context(), ledger.WithSlot(slot), ledger.WithLogger(logger))
	require.NoError(t, err)

	want := first.State()
	got := second.State()
	assert.Equal(t, want, got)
	assert.InDelta(t, 9600, got.CashBalance, 1e-9)
}
