package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gomate/internal/client/catalog"
	"github.com/dmitrijs2005/gomate/internal/client/config"
	"github.com/dmitrijs2005/gomate/internal/client/favourites"
	"github.com/dmitrijs2005/gomate/internal/client/localdb"
	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/client/services"
	"github.com/dmitrijs2005/gomate/internal/filex"
	"github.com/dmitrijs2005/gomate/internal/logging"
)

// App is the interactive client. Construct it with NewApp or Bootstrap.
type App struct {
	accounts   services.AccountService
	catalog    services.CatalogService
	recent     services.RecentRoutesService
	favourites *favourites.Aggregator
	logger     logging.Logger

	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

// Deps are the services the App drives.
type Deps struct {
	Accounts   services.AccountService
	Catalog    services.CatalogService
	Recent     services.RecentRoutesService
	Favourites *favourites.Aggregator
	Logger     logging.Logger
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	return &App{
		accounts:   d.Accounts,
		catalog:    d.Catalog,
		recent:     d.Recent,
		favourites: d.Favourites,
		logger:     d.Logger,
		reader:     bufio.NewReader(in),
		out:        out,
	}
}

// NewSource returns the catalog source selected by cfg.
func NewSource(cfg *config.Config, logger logging.Logger) (catalog.Source, error) {
	if cfg.CatalogSource == config.SourceRemote {
		return catalog.NewHTTPSource(cfg.CatalogURL, cfg.RequestTimeout, logger)
	}
	return catalog.NewFixtureSource()
}

// Storage is a kv.Store over a database handle.
type Storage interface {
	kv.Store
	Close() error
}

// OpenStore opens the storage selected by cfg: the SQLite file under
// cfg.DataDir, or a Postgres server.
func OpenStore(ctx context.Context, cfg *config.Config) (Storage, error) {
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := localdb.InitPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		return kv.NewPostgresStore(db), nil
	}

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	path := cfg.DatabasePath()
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, cfg.DatabaseFile)
	}
	db, err := localdb.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return kv.NewSQLiteStore(db), nil
}

// Bootstrap opens the storage, builds the services and returns an App on
// stdin/stdout. The returned close function releases the database.
func Bootstrap(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, func() error, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	source, err := NewSource(cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	recent := services.NewRecentRoutesService(store, logger)
	favSvc := services.NewFavouritesService(store, logger)

	app := NewApp(Deps{
		Accounts:   services.NewAccountService(store, logger),
		Catalog:    services.NewCatalogService(source, recent, logger),
		Recent:     recent,
		Favourites: favourites.New(ctx, favSvc, logger),
		Logger:     logger,
	}, os.Stdin, os.Stdout)

	return app, store.Close, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Name)
}

// restoreSession picks up the session left by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	u, err := a.accounts.CurrentSession(ctx)
	if err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
		return
	}
	a.user = u
}

// Run restores the session and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	a.restoreSession(ctx)

	fmt.Fprintln(a.out, titleStyle.Render("Welcome to GoMate")+" (type 'help' for commands)")
	if a.user != nil {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", a.user.Name, a.user.Email)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail prints a short message for err. Details go to the log.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.logger.Debug(ctx, what+" failed", "error", err)
	a.println(errorStyle.Render(userMessage(err)))
	return err
}
