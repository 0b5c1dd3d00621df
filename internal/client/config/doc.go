// Package config loads runtime configuration for the GoMate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file named by -c / --config. Files ending in .yaml or
//     .yml are read as YAML, anything else as JSON.
//  3. Command-line flags registered by BindFlags. Only flags set on the
//     command line override earlier values.
//
// # File schema
//
// Durations are timex.Duration values, so "10s" and 10000000000 both work:
//
//	data_dir: /var/lib/gomate
//	storage_driver: postgres
//	database_dsn: postgres://gomate@db:5432/gomate
//	catalog_source: remote
//	catalog_url: http://127.0.0.1:3000
//	request_timeout: 5s
//	log_level: info
//	log_backend: zap
//
// Note: This package does not read environment variables; use the file or
// flags to configure values.
package config
