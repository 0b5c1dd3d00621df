package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gomate/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk layout of the config file, read as YAML when the
// name ends in .yaml or .yml and as JSON otherwise. Durations use
// timex.Duration, so both "3s" and integer nanoseconds work. Omitted or
// empty fields keep their previous value.
type FileConfig struct {
	DataDir           string         `json:"data_dir" yaml:"data_dir"`
	DatabaseFile      string         `json:"database_file" yaml:"database_file"`
	StorageDriver     string         `json:"storage_driver" yaml:"storage_driver"`
	DatabaseDSN       string         `json:"database_dsn" yaml:"database_dsn"`
	CatalogSource     string         `json:"catalog_source" yaml:"catalog_source"`
	CatalogURL        string         `json:"catalog_url" yaml:"catalog_url"`
	RequestTimeout    timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	CatalogListenAddr string         `json:"catalog_listen_addr" yaml:"catalog_listen_addr"`
	LogLevel          string         `json:"log_level" yaml:"log_level"`
	LogBackend        string         `json:"log_backend" yaml:"log_backend"`
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DatabaseFile, fc.DatabaseFile)
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.CatalogSource, fc.CatalogSource)
	setString(&cfg.CatalogURL, fc.CatalogURL)
	setString(&cfg.CatalogListenAddr, fc.CatalogListenAddr)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogBackend, fc.LogBackend)
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
