package prices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []Point{
		{Timestamp: start, Price: 40000},
		{Timestamp: start.Add(time.Hour), Price: 41500},
		{Timestamp: start.Add(2 * time.Hour), Price: 39000},
		{Timestamp: start.Add(3 * time.Hour), Price: 42000},
	}

	q, err := NewQuote(SymbolBTC, history)
	require.NoError(t, err)

	assert.Equal(t, SymbolBTC, q.Symbol)
	assert.Equal(t, 42000.0, q.CurrentPrice)
	assert.Equal(t, 2000.0, q.Change24h)
	assert.InDelta(t, 5.0, q.Change24hPercentage, 1e-9)
	assert.Equal(t, 42000.0, q.High24h)
	assert.Equal(t, 39000.0, q.Low24h)
	assert.Len(t, q.History, 4)
}

func TestNewQuote_SinglePoint(t *testing.T) {
	q, err := NewQuote(SymbolBTC, []Point{{Timestamp: time.Now(), Price: 100}})
	require.NoError(t, err)
	assert.Zero(t, q.Change24h)
	assert.Zero(t, q.Change24hPercentage)
	assert.Equal(t, 100.0, q.High24h)
	assert.Equal(t, 100.0, q.Low24h)
}

func TestNewQuote_Empty(t *testing.T) {
	_, err := NewQuote(SymbolBTC, nil)
	assert.ErrorIs(t, err, ErrEmptyHistory)
}
