package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/spf13/pflag"
)

// Catalog sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Storage drivers.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// DefaultCatalogURL is the public mock API the mobile app used.
const DefaultCatalogURL = "https://my-json-server.typicode.com/lasiniip2/GoMate"

// Config holds runtime settings for the GoMate client and the mock catalog
// server.
//
// Fields:
//   - DataDir: directory holding the local database.
//   - DatabaseFile: SQLite file name, relative to DataDir unless absolute.
//   - StorageDriver: "sqlite" (default) or "postgres".
//   - DatabaseDSN: connection string, used by the postgres driver only.
//   - CatalogSource: "local" (bundled fixture) or "remote" (CatalogURL).
//   - CatalogURL: base URL of the remote catalog API.
//   - RequestTimeout: per-request limit for remote catalog calls.
//   - CatalogListenAddr: bind address of `gomate catalog serve`.
//   - LogLevel / LogBackend: see logging.New.
type Config struct {
	DataDir           string
	DatabaseFile      string
	StorageDriver     string
	DatabaseDSN       string
	CatalogSource     string
	CatalogURL        string
	RequestTimeout    time.Duration
	CatalogListenAddr string
	LogLevel          string
	LogBackend        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".gomate"
	c.DatabaseFile = "gomate.db"
	c.StorageDriver = StorageSQLite
	c.CatalogSource = SourceLocal
	c.CatalogURL = DefaultCatalogURL
	c.RequestTimeout = 10 * time.Second
	c.CatalogListenAddr = "127.0.0.1:3000"
	c.LogLevel = "warn"
	c.LogBackend = logging.BackendText
}

// DatabasePath is the location of the SQLite file.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceLocal:
	case SourceRemote:
		if c.CatalogURL == "" {
			return fmt.Errorf("catalog source %q needs a catalog url", SourceRemote)
		}
	default:
		return fmt.Errorf("unknown catalog source %q (want %s or %s)", c.CatalogSource, SourceLocal, SourceRemote)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	switch c.StorageDriver {
	case StorageSQLite:
		if c.DatabaseFile == "" {
			return fmt.Errorf("database file must be set")
		}
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("storage driver %q needs a dsn", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q (want %s or %s)", c.StorageDriver, StorageSQLite, StoragePostgres)
	}
	switch c.LogBackend {
	case logging.BackendText, logging.BackendJSON, logging.BackendZap:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	return nil
}

// Load builds a Config by applying defaults, then the config file named by
// the --config flag (if any), then the flags the user actually set. fs must
// have been prepared with BindFlags and parsed. A nil fs yields defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if fs != nil {
		path, err := fs.GetString(FlagConfig)
		if err != nil {
			return nil, err
		}
		if path != "" {
			if err := loadFile(path, cfg); err != nil {
				return nil, err
			}
		}
		if err := applyFlags(fs, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
