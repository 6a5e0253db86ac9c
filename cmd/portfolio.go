package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitfolio/internal/ledger"
	"bitfolio/internal/models"

	"github.com/google/subcommands"
	"github.com/pkg/errors"
)

// exitStatus prints err and picks the exit status: rejected trades are usage
// errors, anything else is a failure.
func exitStatus(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	if ledger.IsRejection(err) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

type stateCmd struct {
	limit int
}

func (*stateCmd) Name() string     { return "state" }
func (*stateCmd) Synopsis() string { return "show cash, holdings and transactions" }
func (*stateCmd) Usage() string {
	return `bitfolio state [-n <count>]

  Prints the cash balance, the BTC holdings and the most recent transactions.
`
}

func (p *stateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.limit, "n", 10, "Number of transactions to show, 0 for all.")
}

func (p *stateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	printState(os.Stdout, a.ledger.State(), p.limit)
	return subcommands.ExitSuccess
}

type buyCmd struct {
	amount float64
	price  float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy bitcoin with USD" }
func (*buyCmd) Usage() string {
	return `bitfolio buy -amount <usd> [-price <usd>]

  Spends <usd> on bitcoin. Without -price the configured price source is asked
  for the current price.
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.amount, "amount", 0, "USD to spend.")
	f.Float64Var(&p.price, "price", 0, "BTC price in USD. Defaults to the current price.")
}

func (p *buyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !validAmount(p.amount) {
		fmt.Fprintln(os.Stderr, "Error: -amount must be greater than zero")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	price, err := a.currentPrice(ctx, p.price)
	if err != nil {
		return exitStatus(err)
	}

	tx, err := a.ledger.ExecuteBuy(ctx, p.amount, price)
	if err != nil {
		return exitStatus(err)
	}

	printTransaction(os.Stdout, tx)
	return subcommands.ExitSuccess
}

type sellCmd struct {
	btc   float64
	usd   float64
	price float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell bitcoin for USD" }
func (*sellCmd) Usage() string {
	return `bitfolio sell (-btc <amount> | -usd <amount>) [-price <usd>]

  Sells a BTC quantity, or the quantity worth a USD amount.
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.btc, "btc", 0, "BTC quantity to sell.")
	f.Float64Var(&p.usd, "usd", 0, "USD worth of BTC to sell.")
	f.Float64Var(&p.price, "price", 0, "BTC price in USD. Defaults to the current price.")
}

func (p *sellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (p.btc != 0) == (p.usd != 0) || !validAmount(p.btc+p.usd) {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -btc or -usd must be a positive amount")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	price, err := a.currentPrice(ctx, p.price)
	if err != nil {
		return exitStatus(err)
	}

	var tx models.Transaction
	if p.btc != 0 {
		tx, err = a.ledger.ExecuteSell(ctx, p.btc, price)
	} else {
		tx, err = a.ledger.ExecuteSellValue(ctx, p.usd, price)
	}
	if err != nil {
		return exitStatus(err)
	}

	printTransaction(os.Stdout, tx)
	return subcommands.ExitSuccess
}

type valueCmd struct {
	price float64
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "show the portfolio value" }
func (*valueCmd) Usage() string {
	return `bitfolio value [-price <usd>]

  Prints cash plus holdings valued at -price or the current price, and the
  profit or loss against the initial balance.
`
}

func (p *valueCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.price, "price", 0, "BTC price in USD. Defaults to the current price.")
}

func (p *valueCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	price, err := a.currentPrice(ctx, p.price)
	if err != nil {
		return exitStatus(err)
	}

	value := a.ledger.CalculatePortfolioValue(price)
	initial := a.ledger.InitialBalance()
	fmt.Fprintf(os.Stdout, "Price:  %s\n", usd(price))
	fmt.Fprintf(os.Stdout, "Value:  %s\n", usd(value))
	if initial > 0 {
		fmt.Fprintf(os.Stdout, "P/L:    %s (%s)\n", usd(value-initial), pct((value-initial)/initial*100))
	}
	return subcommands.ExitSuccess
}

type resetCmd struct{}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "reset the portfolio to its initial balance" }
func (*resetCmd) Usage() string {
	return `bitfolio reset

  Clears holdings and history and restores INITIAL_BALANCE.
`
}

func (*resetCmd) SetFlags(*flag.FlagSet) {}

func (*resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if err := a.ledger.Reset(ctx); err != nil {
		return exitStatus(errors.Wrap(err, "reset failed"))
	}
	fmt.Fprintf(os.Stdout, "Portfolio reset to %s\n", usd(a.ledger.InitialBalance()))
	return subcommands.ExitSuccess
}
