package main

import (
	"bytes"
	"testing"
	"time"

	"bitfolio/internal/models"
	"bitfolio/pkg/types/prices"

	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	assert.Equal(t, "$10,000.00", usd(10000))
	assert.Equal(t, "$1,234.50", usd(1234.5))
	assert.Equal(t, "$0.00", usd(0))
	assert.Equal(t, "$0.13", usd(0.125))
}

func TestBTC(t *testing.T) {
	assert.Equal(t, "0.02000000 BTC", btc(0.02))
	assert.Equal(t, "0.00000000 BTC", btc(0))
}

func TestPct(t *testing.T) {
	assert.Equal(t, "+2.00%", pct(2))
	assert.Equal(t, "-0.50%", pct(-0.5))
}

func TestPrintState(t *testing.T) {
	var buf bytes.Buffer
	printState(&buf, models.NewPortfolioState(10000), 10)
	assert.Contains(t, buf.String(), "$10,000.00")
	assert.Contains(t, buf.String(), "No transactions.")

	at := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	state := models.PortfolioState{
		CashBalance:   9600,
		AssetHoldings: 0.01,
		Transactions: []models.Transaction{
			{ID: "tx-2", Kind: models.KindSell, FiatAmount: 600, AssetAmount: 0.01, Price: 60000, OccurredAt: at},
			{ID: "tx-1", Kind: models.KindBuy, FiatAmount: 1000, AssetAmount: 0.02, Price: 50000, OccurredAt: at},
		},
	}

	buf.Reset()
	printState(&buf, state, 1)
	out := buf.String()
	assert.Contains(t, out, "Transactions (1 of 2, newest first)")
	assert.Contains(t, out, "tx-2")
	assert.NotContains(t, out, "tx-1")
	assert.Contains(t, out, "$60,000.00")
}

func TestPrintTransaction(t *testing.T) {
	var buf bytes.Buffer
	printTransaction(&buf, models.Transaction{ID: "tx-1", Kind: models.KindBuy, FiatAmount: 1000, AssetAmount: 0.02, Price: 50000})
	assert.Equal(t, "Bought 0.02000000 BTC for $1,000.00 at $50,000.00 (id tx-1)\n", buf.String())
}

func TestPrintQuote(t *testing.T) {
	var buf bytes.Buffer
	printQuote(&buf, prices.Quote{
		Symbol:              "BTC",
		CurrentPrice:        42000,
		Change24h:           1000,
		Change24hPercentage: 2.439,
		High24h:             42500,
		Low24h:              40100,
		Source:              "mock",
	})
	out := buf.String()
	assert.Contains(t, out, "BTC/USD  $42,000.00  (mock)")
	assert.Contains(t, out, "+2.44%")
	assert.Contains(t, out, "$40,100.00")
}
