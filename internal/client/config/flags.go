package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagDataDir        = "data-dir"
	FlagDatabaseFile   = "db-file"
	FlagStorageDriver  = "storage"
	FlagDatabaseDSN    = "dsn"
	FlagCatalogSource  = "catalog-source"
	FlagCatalogURL     = "catalog-url"
	FlagRequestTimeout = "timeout"
	FlagListenAddr     = "listen"
	FlagLogLevel       = "log-level"
	FlagLogBackend     = "log-backend"
)

// BindFlags registers the configuration flags on fs. Defaults shown in help
// come from LoadDefaults; only flags the user sets override the config file.
//
//	-c, --config string           path to a JSON or YAML config file
//	-d, --data-dir string         directory for local data
//	    --db-file string          SQLite file name
//	    --storage string          sqlite or postgres
//	    --dsn string              postgres connection string
//	-s, --catalog-source string   local or remote
//	-u, --catalog-url string      remote catalog base URL
//	-t, --timeout duration        remote catalog request timeout
//	-a, --listen string           catalog server bind address
//	-l, --log-level string        debug, info, warn or error
//	    --log-backend string      text, json or zap
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagDataDir, "d", d.DataDir, "directory for local data")
	fs.String(FlagDatabaseFile, d.DatabaseFile, "SQLite file name (relative to the data dir)")
	fs.String(FlagStorageDriver, d.StorageDriver, "storage driver: sqlite or postgres")
	fs.String(FlagDatabaseDSN, "", "postgres connection string")
	fs.StringP(FlagCatalogSource, "s", d.CatalogSource, "catalog source: local or remote")
	fs.StringP(FlagCatalogURL, "u", d.CatalogURL, "remote catalog base URL")
	fs.DurationP(FlagRequestTimeout, "t", d.RequestTimeout, "remote catalog request timeout")
	fs.StringP(FlagListenAddr, "a", d.CatalogListenAddr, "catalog server bind address")
	fs.StringP(FlagLogLevel, "l", d.LogLevel, "log level: debug, info, warn or error")
	fs.String(FlagLogBackend, d.LogBackend, "log backend: text, json or zap")
}

// applyFlags copies the flags that were set explicitly into cfg.
func applyFlags(fs *pflag.FlagSet, cfg *Config) error {
	strs := map[string]*string{
		FlagDataDir:       &cfg.DataDir,
		FlagDatabaseFile:  &cfg.DatabaseFile,
		FlagStorageDriver: &cfg.StorageDriver,
		FlagDatabaseDSN:   &cfg.DatabaseDSN,
		FlagCatalogSource: &cfg.CatalogSource,
		FlagCatalogURL:    &cfg.CatalogURL,
		FlagListenAddr:    &cfg.CatalogListenAddr,
		FlagLogLevel:      &cfg.LogLevel,
		FlagLogBackend:    &cfg.LogBackend,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(FlagRequestTimeout) {
		v, err := fs.GetDuration(FlagRequestTimeout)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = v
	}
	return nil
}
