package prices

import (
	"testing"

	"bitfolio/pkg/types/prices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", prices.SourceMock},
		{"mock", prices.SourceMock},
		{" Binance ", prices.SourceBinance},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src, err := New(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, src.Name())
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("kraken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock, binance")
}
