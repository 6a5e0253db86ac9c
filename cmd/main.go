package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
)

// @title Bitfolio API
// @version 1.0
// @description Simulated Bitcoin portfolio API

// @host localhost:8080
// @BasePath /

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}

func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&serveCmd{}, "server")

	c.Register(&stateCmd{}, "portfolio")
	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&valueCmd{}, "portfolio")
	c.Register(&resetCmd{}, "portfolio")
	c.Register(&slotsCmd{}, "portfolio")

	c.Register(&quoteCmd{}, "prices")
}
