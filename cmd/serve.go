package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "bitfolio/docs"
	"bitfolio/internal/handler"
	"bitfolio/internal/ledger"
	"bitfolio/internal/metrics"
	"bitfolio/internal/service"
	"bitfolio/pkg/integrations/memcache"
	"bitfolio/pkg/integrations/wmPubsub"
	"bitfolio/pkg/types/prices"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API and the price feed" }
func (*serveCmd) Usage() string {
	return `bitfolio serve [-port <port>]

  Serves the portfolio API, the SSE price stream, /metrics and /swagger.
  The port defaults to APP_PORT.
`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.port, "port", "", "Port to listen on. Overrides APP_PORT.")
}

func (p *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := p.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (p *serveCmd) run(ctx context.Context) error {
	m := metrics.New()

	a, err := openApp(ctx, os.Stdout, ledger.WithObserver(m))
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	src, err := a.priceSource()
	if err != nil {
		return err
	}

	ps, err := wmPubsub.New(
		wmPubsub.WithContext(ctx),
		wmPubsub.WithLogger(logger),
		wmPubsub.WithTopic("prices"),
	)
	if err != nil {
		return err
	}
	defer ps.Close()

	feed, err := service.NewPriceFeedService(
		service.WithPriceFeedContext(ctx),
		service.WithPriceFeedLogger(logger),
		service.WithPriceFeedCache(memcache.New[string, prices.Quote]()),
		service.WithPriceFeedSource(src),
		service.WithPriceFeedPublisher(ps),
		service.WithPriceFeedObserver(m),
		service.WithPriceFeedInterval(a.cfg.PriceRefreshInterval),
	)
	if err != nil {
		return err
	}
	if err := feed.Start(); err != nil {
		return err
	}
	defer feed.Stop()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h, err := handler.New(
		handler.WithEngine(r),
		handler.WithLedger(a.ledger),
		handler.WithPriceFeed(feed),
		handler.WithPriceSubscriber(ps),
		handler.WithMetrics(m),
		handler.WithLogger(logger),
		handler.WithSwagger(true),
	)
	if err != nil {
		return err
	}
	if err := h.Setup(); err != nil {
		return err
	}

	port := p.port
	if port == "" {
		port = a.cfg.Port
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting bitfolio", "port", port, "price_source", src.Name(), "refresh", a.cfg.PriceRefreshInterval)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
