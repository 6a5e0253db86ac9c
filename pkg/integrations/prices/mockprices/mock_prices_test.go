package mockprices

import (
	"context"
	"testing"
	"time"

	"bitfolio/pkg/types/prices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_QuoteShape(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	src := NewSource(WithSeed(7), WithClock(func() time.Time { return now }))

	q, err := src.Quote(t.Context())
	require.NoError(t, err)

	assert.Equal(t, prices.SymbolBTC, q.Symbol)
	assert.Equal(t, prices.SourceMock, q.Source)
	assert.Equal(t, now, q.FetchedAt)
	require.Len(t, q.History, 25)
	assert.Equal(t, now.Add(-24*time.Hour), q.History[0].Timestamp)
	assert.Equal(t, now, q.History[24].Timestamp)

	for i, p := range q.History {
		assert.GreaterOrEqual(t, p.Price, basePriceMin-noiseRange/2, "point %d", i)
		assert.Less(t, p.Price, basePriceMin+basePriceRange+noiseRange/2+864, "point %d", i)
		if i > 0 {
			assert.Equal(t, step, p.Timestamp.Sub(q.History[i-1].Timestamp))
		}
	}

	assert.Equal(t, q.History[24].Price, q.CurrentPrice)
	assert.InDelta(t, q.CurrentPrice-q.History[0].Price, q.Change24h, 1e-9)
	assert.InDelta(t, q.Change24h/q.History[0].Price*100, q.Change24hPercentage, 1e-9)
	assert.GreaterOrEqual(t, q.High24h, q.CurrentPrice)
	assert.LessOrEqual(t, q.Low24h, q.CurrentPrice)
}

func TestSource_Deterministic(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	a, err := NewSource(WithSeed(42), WithClock(clock)).Quote(t.Context())
	require.NoError(t, err)
	b, err := NewSource(WithSeed(42), WithClock(clock)).Quote(t.Context())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSource_DelayHonoursContext(t *testing.T) {
	src := NewSource(WithSeed(1), WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err := src.Quote(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
