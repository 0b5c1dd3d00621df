package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/gomate/internal/buildinfo"
	"github.com/dmitrijs2005/gomate/internal/client/catalog"
	"github.com/dmitrijs2005/gomate/internal/client/cli"
	"github.com/dmitrijs2005/gomate/internal/client/config"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/dmitrijs2005/gomate/internal/server"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gomate",
		Short:        "GoMate travel companion for Sri Lanka",
		Long:         "GoMate: browse destinations, routes and schedules, keep favourites and a local account.",
		SilenceUsage: true,
		Version:      buildinfo.Version(),
		Args:         cobra.NoArgs,
		RunE:         runREPL,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Start the interactive shell (default)",
			Args:  cobra.NoArgs,
			RunE:  runREPL,
		},
		newCatalogCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)
	return root
}

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog tools",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP in the layout of the remote API",
		Args:  cobra.NoArgs,
		RunE:  runCatalogServe,
	}
	serve.Flags().String("data", "", "catalog JSON file to serve instead of the bundled one")

	catalogCmd.AddCommand(serve)
	return catalogCmd
}

// setup loads the configuration from the command flags and builds the
// logger. The returned function flushes the logger.
func setup(cmd *cobra.Command) (*config.Config, logging.Logger, func(), error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogBackend, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	flush := func() {}
	if z, ok := logger.(*logging.ZapLogger); ok {
		flush = func() { _ = z.Sync() }
	}
	return cfg, logger, flush, nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), server.ShutdownSignals...)
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg, logger, flush, err := setup(cmd)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signalContext(cmd)
	defer stop()

	app, closeFn, err := cli.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Error(ctx, "closing database", "error", err)
		}
	}()

	app.Run(ctx)
	return nil
}

func runCatalogServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, flush, err := setup(cmd)
	if err != nil {
		return err
	}
	defer flush()

	dataFile, err := cmd.Flags().GetString("data")
	if err != nil {
		return err
	}

	src, err := serveSource(dataFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving catalog on http://%s\n", cfg.CatalogListenAddr)
	return server.NewApp(cfg.CatalogListenAddr, src, logger).Run(cmd.Context())
}

func serveSource(path string) (catalog.Source, error) {
	if path == "" {
		return catalog.NewFixtureSource()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog data: %w", err)
	}
	defer f.Close()

	c, err := catalog.Decode(f)
	if err != nil {
		return nil, err
	}
	return catalog.NewLocalSource(c), nil
}
