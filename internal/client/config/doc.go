// Package config loads runtime configuration for the stockkeeper console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: csv, sqlite or postgres
//	-d string   data directory for the csv and sqlite backends
//	-dsn string postgres connection string
//	-q string   quote API base URL
//	-k string   quote API key
//	-t int      quote request timeout (seconds)
//	-m int      wrong passwords before lockout
//	-p string   password hash scheme: sha256 or argon2id
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Keys missing from the file keep their default. The timeout uses
// timex.Duration, so it can be a string like "10s" or integer nanoseconds:
//
//	{
//	  "storage": "sqlite",
//	  "data_dir": "/var/lib/stockkeeper",
//	  "database_dsn": "",
//	  "quote_api_url": "https://www.alphavantage.co",
//	  "quote_api_key": "demo",
//	  "quote_timeout": "10s",
//	  "max_login_attempts": 5,
//	  "password_hash": "argon2id",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
