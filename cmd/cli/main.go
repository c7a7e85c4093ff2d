package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/stockkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/stockkeeper/internal/client/cli"
	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/quotes"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("error opening %s storage: %v", cfg.Storage, err)
	}
	defer repos.Close()

	fetcher := quotes.NewAlphaVantageClient(cfg.QuoteAPIURL, cfg.QuoteAPIKey, cfg.QuoteTimeout)

	app, err := cli.NewApp(cfg, repos, fetcher, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	logger.Debug(ctx, "console started", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	app.Run(ctx)

}
