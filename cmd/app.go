package main

import (
	"context"
	"io"
	"log/slog"
	"math"

	"bitfolio/internal/config"
	"bitfolio/internal/ledger"
	"bitfolio/internal/repo"
	"bitfolio/pkg/database"
	pricesPkg "bitfolio/pkg/integrations/prices"
	"bitfolio/pkg/types/prices"

	"github.com/pkg/errors"
)

// app bundles what every command needs: configuration, logger and the
// SQLite-backed ledger.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *database.Database
	repo   *repo.Repository
	ledger *ledger.Ledger
}

func openApp(ctx context.Context, logOut io.Writer, opts ...ledger.Option) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.LoggerTo(logOut)

	db, err := database.New(database.WithPath(cfg.DBPath), database.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize database")
	}

	repository, err := openRepo(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	l, err := openLedger(ctx, cfg, logger, repository, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, db: db, repo: repository, ledger: l}, nil
}

func openRepo(db *database.Database) (*repo.Repository, error) {
	conn, err := db.Get()
	if err != nil {
		return nil, err
	}

	repository, err := repo.New(conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create repository")
	}
	if err := repository.Migrate(); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	return repository, nil
}

func openLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger, repository *repo.Repository, opts ...ledger.Option) (*ledger.Ledger, error) {
	slot, err := repo.NewSettingSlot(repository, cfg.SlotKey)
	if err != nil {
		return nil, err
	}

	base := []ledger.Option{
		ledger.WithSlot(slot),
		ledger.WithLogger(logger),
		ledger.WithInitialBalance(cfg.InitialBalance),
	}
	l, err := ledger.New(ctx, append(base, opts...)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ledger")
	}
	return l, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) priceSource() (prices.Source, error) {
	return pricesPkg.New(a.cfg.PriceSource)
}

// currentPrice returns explicit when positive, else a fresh quote.
func (a *app) currentPrice(ctx context.Context, explicit float64) (float64, error) {
	if explicit != 0 {
		if !validAmount(explicit) {
			return 0, errors.Wrapf(ledger.ErrInvalidPrice, "-price %v", explicit)
		}
		return explicit, nil
	}
	src, err := a.priceSource()
	if err != nil {
		return 0, err
	}
	q, err := src.Quote(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to fetch price from %s", src.Name())
	}
	return q.CurrentPrice, nil
}

// validAmount reports whether a flag value is a finite number above zero.
func validAmount(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
