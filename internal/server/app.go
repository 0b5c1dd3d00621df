// Package server runs the mock catalog API: it loads a catalog source,
// handles graceful shutdown on SIGINT/SIGTERM/SIGQUIT and serves the
// catalog over HTTP until stopped.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gomate/internal/client/catalog"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/dmitrijs2005/gomate/internal/server/rest"
)

// ShutdownSignals stop both the server and the interactive client.
var ShutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

type App struct {
	address string
	logger  logging.Logger
	source  catalog.Source
}

func NewApp(address string, source catalog.Source, logger logging.Logger) *App {
	return &App{address: address, logger: logger, source: source}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, ShutdownSignals...)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := rest.NewHTTPServer(app.address, app.logger, app.source)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run blocks until ctx is cancelled, a signal arrives or the server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting catalog server...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	return runErr
}
