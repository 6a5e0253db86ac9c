package binanceprices

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"bitfolio/pkg/types/prices"

	"gonum.org/v1/gonum/floats"
)

var (
	_ prices.Source = (*Source)(nil)
)

// Source builds quotes from Binance hourly klines. The last kline's close is
// the current price and the 24h range spans the klines' highs and lows.
type Source struct {
	BaseURL string
	Client  *http.Client
	Pair    string
	Now     func() time.Time
}

func NewSource() *Source {
	return &Source{
		BaseURL: "https://api.binance.com/api/v3",
		Client:  &http.Client{Timeout: 10 * time.Second},
		Pair:    prices.SymbolBTC + "USDT",
		Now:     time.Now,
	}
}

func (b *Source) Name() string {
	return prices.SourceBinance
}

type kline struct {
	point prices.Point
	high  float64
	low   float64
}

func (b *Source) Quote(ctx context.Context) (prices.Quote, error) {
	rows, err := b.klines(ctx)
	if err != nil {
		return prices.Quote{}, err
	}

	history := make([]prices.Point, len(rows))
	highs := make([]float64, len(rows))
	lows := make([]float64, len(rows))
	for i, k := range rows {
		history[i] = k.point
		highs[i] = k.high
		lows[i] = k.low
	}

	q, err := prices.NewQuote(prices.SymbolBTC, history)
	if err != nil {
		return prices.Quote{}, fmt.Errorf("binance %s: %w", b.Pair, err)
	}
	// Intra-hour extremes, not just the closes.
	q.High24h = math.Max(q.High24h, floats.Max(highs))
	q.Low24h = math.Min(q.Low24h, floats.Min(lows))
	q.Source = b.Name()
	q.FetchedAt = b.Now()
	return q, nil
}

func (b *Source) klines(ctx context.Context) ([]kline, error) {
	endpoint := fmt.Sprintf("%s/klines?symbol=%s&interval=1h&limit=25", b.BaseURL, b.Pair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("invalid trading pair: %s", b.Pair)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Each kline is [openTime, open, high, low, close, volume, closeTime, ...].
	var rows [][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]kline, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("kline %d: expected at least 5 fields, got %d", i, len(row))
		}

		var openTime int64
		if err := json.Unmarshal(row[0], &openTime); err != nil {
			return nil, fmt.Errorf("kline %d: invalid open time: %w", i, err)
		}

		high, err := parsePrice(row[2])
		if err != nil {
			return nil, fmt.Errorf("kline %d: invalid high: %w", i, err)
		}
		low, err := parsePrice(row[3])
		if err != nil {
			return nil, fmt.Errorf("kline %d: invalid low: %w", i, err)
		}
		closePrice, err := parsePrice(row[4])
		if err != nil {
			return nil, fmt.Errorf("kline %d: invalid close: %w", i, err)
		}

		out = append(out, kline{
			point: prices.Point{
				Timestamp: time.UnixMilli(openTime).UTC(),
				Price:     closePrice,
			},
			high: high,
			low:  low,
		})
	}

	return out, nil
}

// parsePrice decodes a quoted decimal string and rejects anything that is not
// a finite positive price.
func parsePrice(raw json.RawMessage) (float64, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, err
	}
	p, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %w", err)
	}
	if !(p > 0) || math.IsInf(p, 1) {
		return 0, fmt.Errorf("price out of range: %s", str)
	}
	return p, nil
}
