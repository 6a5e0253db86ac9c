package prices

import (
	"fmt"
	"strings"

	"bitfolio/pkg/integrations/prices/binanceprices"
	"bitfolio/pkg/integrations/prices/mockprices"
	"bitfolio/pkg/types/prices"
)

var sources = map[string]func() prices.Source{
	prices.SourceMock:    func() prices.Source { return mockprices.NewSource() },
	prices.SourceBinance: func() prices.Source { return binanceprices.NewSource() },
}

func AvailableSources() []string {
	return []string{
		prices.SourceMock,
		prices.SourceBinance,
	}
}

// New returns the price source registered under name. An empty name selects
// the mock source.
func New(name string) (prices.Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = prices.SourceMock
	}

	factory, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown price source %q (available: %s)", name, strings.Join(AvailableSources(), ", "))
	}
	return factory(), nil
}
