package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"bitfolio/pkg/types/prices"

	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch the current BTC quote" }
func (*quoteCmd) Usage() string {
	return `bitfolio quote

  Fetches one quote from PRICE_SOURCE and prints the 24h statistics.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	src, err := a.priceSource()
	if err != nil {
		return exitStatus(err)
	}
	q, err := src.Quote(ctx)
	if err != nil {
		return exitStatus(err)
	}

	printQuote(os.Stdout, q)
	return subcommands.ExitSuccess
}

func printQuote(w io.Writer, q prices.Quote) {
	fmt.Fprintf(w, "%s/USD  %s  (%s)\n", q.Symbol, usd(q.CurrentPrice), q.Source)
	fmt.Fprintf(w, "24h:    %s  %s\n", usd(q.Change24h), pct(q.Change24hPercentage))
	fmt.Fprintf(w, "High:   %s\n", usd(q.High24h))
	fmt.Fprintf(w, "Low:    %s\n", usd(q.Low24h))
}
