package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"bitfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() models.PortfolioState {
	at := time.Date(2024, 5, 17, 9, 30, 15, 123456789, time.UTC)
	return models.PortfolioState{
		CashBalance:   9600,
		AssetHoldings: 0.01,
		Transactions: []models.Transaction{
			{ID: "b", Kind: models.KindSell, FiatAmount: 600, AssetAmount: 0.01, Price: 60000, OccurredAt: at.Add(time.Hour)},
			{ID: "a", Kind: models.KindBuy, FiatAmount: 1000, AssetAmount: 0.02, Price: 50000, OccurredAt: at},
		},
	}
}

func TestEncode_SlotFormat(t *testing.T) {
	data, err := Encode(sampleState())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 9600.0, raw["cashBalance"])
	assert.Equal(t, 0.01, raw["assetHoldings"])

	txs, ok := raw["transactions"].([]any)
	require.True(t, ok)
	require.Len(t, txs, 2)

	first := txs[0].(map[string]any)
	assert.Equal(t, "b", first["id"])
	assert.Equal(t, "sell", first["kind"])
	assert.Equal(t, "2024-05-17T10:30:15.123456789Z", first["occurredAt"])
}

func TestEncode_EmptyHistory(t *testing.T) {
	data, err := Encode(models.NewPortfolioState(10000))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cashBalance":10000,"assetHoldings":0,"transactions":[]}`, string(data))
}

func TestDecode_RoundTrip(t *testing.T) {
	state := sampleState()
	data, err := Encode(state)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestDecode_NormalizesToUTC(t *testing.T) {
	state := sampleState()
	paris := time.FixedZone("CET", 3600)
	state.Transactions[1].OccurredAt = state.Transactions[1].OccurredAt.In(paris)

	data, err := Encode(state)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.True(t, state.Transactions[1].OccurredAt.Equal(decoded.Transactions[1].OccurredAt))
	assert.Equal(t, time.UTC, decoded.Transactions[1].OccurredAt.Location())
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"cashBalance":`},
		{"negative cash", `{"cashBalance":-1,"assetHoldings":0,"transactions":[]}`},
		{"negative holdings", `{"cashBalance":1,"assetHoldings":-0.1,"transactions":[]}`},
		{"missing id", `{"cashBalance":1,"assetHoldings":0,"transactions":[{"kind":"buy","fiatAmount":1,"assetAmount":1,"price":1,"occurredAt":"2024-01-01T00:00:00Z"}]}`},
		{"unknown kind", `{"cashBalance":1,"assetHoldings":0,"transactions":[{"id":"x","kind":"gift","fiatAmount":1,"assetAmount":1,"price":1,"occurredAt":"2024-01-01T00:00:00Z"}]}`},
		{"zero amount", `{"cashBalance":1,"assetHoldings":0,"transactions":[{"id":"x","kind":"buy","fiatAmount":0,"assetAmount":1,"price":1,"occurredAt":"2024-01-01T00:00:00Z"}]}`},
		{"bad timestamp", `{"cashBalance":1,"assetHoldings":0,"transactions":[{"id":"x","kind":"buy","fiatAmount":1,"assetAmount":1,"price":1,"occurredAt":"yesterday"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrRestoreFailure)
		})
	}
}

func TestDecode_MissingTransactions(t *testing.T) {
	state, err := Decode([]byte(`{"cashBalance":42,"assetHoldings":0}`))
	require.NoError(t, err)
	assert.Equal(t, 42.0, state.CashBalance)
	assert.NotNil(t, state.Transactions)
	assert.Empty(t, state.Transactions)
}
