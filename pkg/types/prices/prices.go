package prices

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	SourceMock    = "mock"
	SourceBinance = "binance"

	SymbolBTC = "BTC"
)

var ErrEmptyHistory = errors.New("price history is empty")

type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Quote is one delivery of the price source: the current price, its 24h
// statistics and the history they were computed from, oldest first.
type Quote struct {
	Symbol              string    `json:"symbol"`
	CurrentPrice        float64   `json:"current_price"`
	Change24h           float64   `json:"change_24h"`
	Change24hPercentage float64   `json:"change_24h_percentage"`
	High24h             float64   `json:"high_24h"`
	Low24h              float64   `json:"low_24h"`
	History             []Point   `json:"price_history"`
	Source              string    `json:"source"`
	FetchedAt           time.Time `json:"fetched_at"`
}

// Source produces quotes. Implementations may block on I/O and must honour ctx.
type Source interface {
	Name() string
	Quote(ctx context.Context) (Quote, error)
}

// NewQuote derives the 24h figures from history. The last point is the
// current price and the first one is the 24h reference.
func NewQuote(symbol string, history []Point) (Quote, error) {
	if len(history) == 0 {
		return Quote{}, ErrEmptyHistory
	}

	values := make([]float64, len(history))
	for i, p := range history {
		values[i] = p.Price
	}

	current := values[len(values)-1]
	reference := values[0]
	change := current - reference

	var changePct float64
	if reference != 0 {
		changePct = change / reference * 100
	}

	return Quote{
		Symbol:              symbol,
		CurrentPrice:        current,
		Change24h:           change,
		Change24hPercentage: changePct,
		High24h:             floats.Max(values),
		Low24h:              floats.Min(values),
		History:             history,
	}, nil
}
