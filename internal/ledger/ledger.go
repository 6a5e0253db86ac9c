package ledger

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"bitfolio/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	DefaultInitialBalance = 10000.0

	// A USD-denominated sell within this many BTC of the holdings sells all of
	// them, so converting back and forth never leaves dust or fails.
	sellClampTolerance = 1e-12

	// Decimal places kept when converting USD to BTC. The library default
	// truncates small buys to zero.
	divisionPrecision = 32
)

// Observer is notified after every ledger operation.
type Observer interface {
	TradeExecuted(tx models.Transaction)
	TradeRejected(kind models.TransactionKind, err error)
}

// Ledger holds one simulated portfolio. All operations validate first and
// either apply and persist completely or leave the state untouched.
type Ledger struct {
	mu             sync.Mutex
	state          models.PortfolioState
	initialBalance float64
	slot           Slot
	logger         *slog.Logger
	now            func() time.Time
	newID          func() string
	observer       Observer
}

type Option func(*Ledger)

func WithInitialBalance(balance float64) Option {
	return func(l *Ledger) {
		l.initialBalance = balance
	}
}

func WithSlot(s Slot) Option {
	return func(l *Ledger) {
		l.slot = s
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observer = o
	}
}

func (l *Ledger) IsValid() error {
	switch {
	case l.slot == nil:
		return errors.Wrap(ErrInvalidLedgerConfig, "slot cannot be nil")
	case l.logger == nil:
		return errors.Wrap(ErrInvalidLedgerConfig, "logger cannot be nil")
	case l.now == nil:
		return errors.Wrap(ErrInvalidLedgerConfig, "clock cannot be nil")
	case l.newID == nil:
		return errors.Wrap(ErrInvalidLedgerConfig, "id generator cannot be nil")
	case l.initialBalance < 0:
		return errors.Wrap(ErrInvalidLedgerConfig, "initial balance cannot be negative")
	default:
		return nil
	}
}

// New builds a ledger and restores it from its slot. A slot that cannot be
// read or decoded is logged and replaced by a fresh portfolio.
func New(ctx context.Context, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		initialBalance: DefaultInitialBalance,
		now:            time.Now,
		newID:          uuid.NewString,
	}

	for _, opt := range opts {
		opt(l)
	}

	if err := l.IsValid(); err != nil {
		return nil, err
	}

	if err := l.Restore(ctx); err != nil {
		l.logger.Warn("starting with a fresh portfolio", "error", err)
	}

	return l, nil
}

func (l *Ledger) InitialBalance() float64 {
	return l.initialBalance
}

// State returns a snapshot that the caller may keep or modify freely.
func (l *Ledger) State() models.PortfolioState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

func (l *Ledger) ExecuteBuy(ctx context.Context, fiatAmount, price float64) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.buyLocked(ctx, fiatAmount, price)
	l.notify(models.KindBuy, tx, err)
	return tx, err
}

func (l *Ledger) buyLocked(ctx context.Context, fiatAmount, price float64) (models.Transaction, error) {
	if !positive(fiatAmount) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidAmount, "buy of %v USD", fiatAmount)
	}
	if !positive(price) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidPrice, "buy at %v USD", price)
	}

	fiat := decimal.NewFromFloat(fiatAmount)
	cash := decimal.NewFromFloat(l.state.CashBalance)
	if fiat.GreaterThan(cash) {
		return models.Transaction{}, errors.Wrapf(ErrInsufficientFunds, "buy of %s USD with %s USD available", fiat, cash)
	}

	asset := fiat.DivRound(decimal.NewFromFloat(price), divisionPrecision)
	if !positive(asset.InexactFloat64()) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidAmount, "buy of %s USD at %v USD is below the smallest BTC amount", fiat, price)
	}
	holdings := decimal.NewFromFloat(l.state.AssetHoldings).Add(asset)

	tx := models.Transaction{
		ID:          l.newID(),
		Kind:        models.KindBuy,
		FiatAmount:  fiatAmount,
		AssetAmount: asset.InexactFloat64(),
		Price:       price,
		OccurredAt:  l.now().UTC(),
	}

	next := models.PortfolioState{
		CashBalance:   cash.Sub(fiat).InexactFloat64(),
		AssetHoldings: holdings.InexactFloat64(),
		Transactions:  prepend(tx, l.state.Transactions),
	}
	if err := l.commitLocked(ctx, next); err != nil {
		return models.Transaction{}, err
	}

	l.logger.Info("executed buy", "id", tx.ID, "usd", tx.FiatAmount, "btc", tx.AssetAmount, "price", tx.Price)
	return tx, nil
}

func (l *Ledger) ExecuteSell(ctx context.Context, assetAmount, price float64) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.sellLocked(ctx, assetAmount, price)
	l.notify(models.KindSell, tx, err)
	return tx, err
}

// ExecuteSellValue sells the BTC quantity worth fiatAmount at price.
func (l *Ledger) ExecuteSellValue(ctx context.Context, fiatAmount, price float64) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.sellValueLocked(ctx, fiatAmount, price)
	l.notify(models.KindSell, tx, err)
	return tx, err
}

func (l *Ledger) sellValueLocked(ctx context.Context, fiatAmount, price float64) (models.Transaction, error) {
	if !positive(fiatAmount) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidAmount, "sell of %v USD", fiatAmount)
	}
	if !positive(price) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidPrice, "sell at %v USD", price)
	}

	asset := decimal.NewFromFloat(fiatAmount).DivRound(decimal.NewFromFloat(price), divisionPrecision)
	holdings := decimal.NewFromFloat(l.state.AssetHoldings)
	if holdings.IsPositive() && asset.Sub(holdings).Abs().LessThanOrEqual(decimal.NewFromFloat(sellClampTolerance)) {
		asset = holdings
	}

	return l.sellLocked(ctx, asset.InexactFloat64(), price)
}

func (l *Ledger) sellLocked(ctx context.Context, assetAmount, price float64) (models.Transaction, error) {
	if !positive(assetAmount) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidAmount, "sell of %v BTC", assetAmount)
	}
	if !positive(price) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidPrice, "sell at %v USD", price)
	}

	asset := decimal.NewFromFloat(assetAmount)
	holdings := decimal.NewFromFloat(l.state.AssetHoldings)
	if asset.GreaterThan(holdings) {
		return models.Transaction{}, errors.Wrapf(ErrInsufficientHoldings, "sell of %s BTC with %s BTC held", asset, holdings)
	}

	fiat := asset.Mul(decimal.NewFromFloat(price))
	if !positive(fiat.InexactFloat64()) {
		return models.Transaction{}, errors.Wrapf(ErrInvalidAmount, "sell of %s BTC at %v USD is worth less than the smallest USD amount", asset, price)
	}
	cash := decimal.NewFromFloat(l.state.CashBalance).Add(fiat)

	tx := models.Transaction{
		ID:          l.newID(),
		Kind:        models.KindSell,
		FiatAmount:  fiat.InexactFloat64(),
		AssetAmount: assetAmount,
		Price:       price,
		OccurredAt:  l.now().UTC(),
	}

	next := models.PortfolioState{
		CashBalance:   cash.InexactFloat64(),
		AssetHoldings: holdings.Sub(asset).InexactFloat64(),
		Transactions:  prepend(tx, l.state.Transactions),
	}
	if err := l.commitLocked(ctx, next); err != nil {
		return models.Transaction{}, err
	}

	l.logger.Info("executed sell", "id", tx.ID, "usd", tx.FiatAmount, "btc", tx.AssetAmount, "price", tx.Price)
	return tx, nil
}

// CalculatePortfolioValue returns cash plus holdings valued at price. A NaN
// or infinite price propagates into the result instead of panicking.
func (l *Ledger) CalculatePortfolioValue(price float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return l.state.CashBalance + l.state.AssetHoldings*price
	}
	return decimal.NewFromFloat(l.state.CashBalance).
		Add(decimal.NewFromFloat(l.state.AssetHoldings).Mul(decimal.NewFromFloat(price))).
		InexactFloat64()
}

// Reset returns the portfolio to its initial balance with no holdings and no
// history. Only the slot write can fail.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.commitLocked(ctx, models.NewPortfolioState(l.initialBalance)); err != nil {
		return err
	}
	l.logger.Info("portfolio reset", "balance", l.initialBalance)
	return nil
}

func (l *Ledger) Persist(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persistLocked(ctx, l.state)
}

// Restore replaces the in-memory state with the slot content. An empty slot
// yields a fresh portfolio. Unreadable content also yields a fresh portfolio,
// and the cause is returned wrapped in ErrRestoreFailure.
func (l *Ledger) Restore(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = models.NewPortfolioState(l.initialBalance)

	data, err := l.slot.Load(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		l.logger.Debug("no saved portfolio, starting fresh", "balance", l.initialBalance)
		return nil
	}
	if err != nil {
		return errors.Wrapf(ErrRestoreFailure, "slot read: %v", err)
	}

	state, err := Decode(data)
	if err != nil {
		return err
	}

	l.state = state
	l.logger.Debug("restored portfolio",
		"cash", state.CashBalance,
		"btc", state.AssetHoldings,
		"transactions", len(state.Transactions),
	)
	return nil
}

func (l *Ledger) commitLocked(ctx context.Context, next models.PortfolioState) error {
	if err := l.persistLocked(ctx, next); err != nil {
		return err
	}
	l.state = next
	return nil
}

func (l *Ledger) persistLocked(ctx context.Context, state models.PortfolioState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := l.slot.Save(ctx, data); err != nil {
		return errors.Wrap(err, "failed to persist portfolio")
	}
	return nil
}

func (l *Ledger) notify(kind models.TransactionKind, tx models.Transaction, err error) {
	if l.observer == nil {
		return
	}
	if err != nil {
		l.observer.TradeRejected(kind, err)
		return
	}
	l.observer.TradeExecuted(tx)
}

// positive reports whether x is a finite amount above zero.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func prepend(tx models.Transaction, txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs)+1)
	out = append(out, tx)
	return append(out, txs...)
}
