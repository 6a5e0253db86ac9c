package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot()

	_, err := slot.Load(t.Context())
	assert.ErrorIs(t, err, ErrSlotEmpty)

	payload := []byte(`{"cashBalance":1}`)
	require.NoError(t, slot.Save(t.Context(), payload))
	payload[0] = 'X'

	got, err := slot.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, `{"cashBalance":1}`, string(got))
}
