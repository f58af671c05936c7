package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	charm "github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/cloudshare/cloudshare-cli/internal/buildinfo"
	"github.com/cloudshare/cloudshare-cli/internal/client/cli"
	"github.com/cloudshare/cloudshare-cli/internal/client/config"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// newLogger picks the pretty terminal logger when stderr is a tty and plain
// structured output otherwise.
func newLogger() logging.Logger {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return logging.NewCharmLogger(charm.New(os.Stderr))
	}
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, newLogger())
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
