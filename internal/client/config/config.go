package config

import (
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/dmitrijs2005/stockkeeper/internal/quotes"
	"github.com/dmitrijs2005/stockkeeper/internal/services"
)

// Storage backends accepted in Config.Storage.
const (
	StorageCSV      = "csv"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds runtime settings for the stockkeeper console.
//
// Units: QuoteTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	Storage     string
	DataDir     string
	DatabaseDSN string

	QuoteAPIURL  string
	QuoteAPIKey  string
	QuoteTimeout time.Duration

	MaxLoginAttempts int
	PasswordHash     string
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageCSV
	c.DataDir = "data"
	c.DatabaseDSN = ""
	c.QuoteAPIURL = quotes.DefaultBaseURL
	c.QuoteAPIKey = "demo"
	c.QuoteTimeout = 10 * time.Second
	c.MaxLoginAttempts = services.DefaultMaxAttempts
	c.PasswordHash = password.SchemeSHA256
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
