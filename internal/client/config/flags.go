package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
)

var knownFlags = []string{"-s", "-d", "-dsn", "-q", "-k", "-t", "-m", "-p", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config and foreign flags do not interfere.
// It panics on a malformed value.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (csv, sqlite, postgres)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "postgres connection string")
	fs.StringVar(&cfg.QuoteAPIURL, "q", cfg.QuoteAPIURL, "quote API base URL")
	fs.StringVar(&cfg.QuoteAPIKey, "k", cfg.QuoteAPIKey, "quote API key")
	quoteTimeout := fs.Int("t", int(cfg.QuoteTimeout.Seconds()), "quote request timeout (in seconds)")
	fs.IntVar(&cfg.MaxLoginAttempts, "m", cfg.MaxLoginAttempts, "wrong passwords before lockout")
	fs.StringVar(&cfg.PasswordHash, "p", cfg.PasswordHash, "password hash scheme (sha256, argon2id)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -t replaces the timeout, so sub-second JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.QuoteTimeout = time.Duration(*quoteTimeout) * time.Second
		}
	})
}
