package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
	"github.com/dmitrijs2005/stockkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds.
type JsonConfig struct {
	Storage          string         `json:"storage"`
	DataDir          string         `json:"data_dir"`
	DatabaseDSN      string         `json:"database_dsn"`
	QuoteAPIURL      string         `json:"quote_api_url"`
	QuoteAPIKey      string         `json:"quote_api_key"`
	QuoteTimeout     timex.Duration `json:"quote_timeout"`
	MaxLoginAttempts int            `json:"max_login_attempts"`
	PasswordHash     string         `json:"password_hash"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing.
//
// The DTO is seeded from cfg, so keys absent from the file keep their
// current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	jc := JsonConfig{
		Storage:          cfg.Storage,
		DataDir:          cfg.DataDir,
		DatabaseDSN:      cfg.DatabaseDSN,
		QuoteAPIURL:      cfg.QuoteAPIURL,
		QuoteAPIKey:      cfg.QuoteAPIKey,
		QuoteTimeout:     timex.Duration{Duration: cfg.QuoteTimeout},
		MaxLoginAttempts: cfg.MaxLoginAttempts,
		PasswordHash:     cfg.PasswordHash,
		LogLevel:         cfg.LogLevel,
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.Storage = jc.Storage
	cfg.DataDir = jc.DataDir
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.QuoteAPIURL = jc.QuoteAPIURL
	cfg.QuoteAPIKey = jc.QuoteAPIKey
	cfg.QuoteTimeout = jc.QuoteTimeout.Duration
	cfg.MaxLoginAttempts = jc.MaxLoginAttempts
	cfg.PasswordHash = jc.PasswordHash
	cfg.LogLevel = jc.LogLevel
}
