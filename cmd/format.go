package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"bitfolio/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// usd renders a dollar amount rounded to cents, e.g. "$1,234.50".
func usd(amount float64) string {
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func btc(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(8) + " BTC"
}

func pct(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

func printState(w io.Writer, state models.PortfolioState, limit int) {
	fmt.Fprintf(w, "Cash:      %s\n", usd(state.CashBalance))
	fmt.Fprintf(w, "Holdings:  %s\n", btc(state.AssetHoldings))

	if len(state.Transactions) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}

	txs := state.Transactions
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	fmt.Fprintf(w, "\nTransactions (%d of %d, newest first):\n", len(txs), len(state.Transactions))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tBTC\tUSD\tPRICE\tID")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.OccurredAt.Local().Format("2006-01-02 15:04:05"),
			tx.Kind,
			btc(tx.AssetAmount),
			usd(tx.FiatAmount),
			usd(tx.Price),
			tx.ID,
		)
	}
	tw.Flush()
}

func printTransaction(w io.Writer, tx models.Transaction) {
	verb := "Bought"
	if tx.Kind == models.KindSell {
		verb = "Sold"
	}
	fmt.Fprintf(w, "%s %s for %s at %s (id %s)\n", verb, btc(tx.AssetAmount), usd(tx.FiatAmount), usd(tx.Price), tx.ID)
}
