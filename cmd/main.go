package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/mdx/internal/services"
	"github.com/desertthunder/mdx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	timeout := time.Duration(config.Sync.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	source := services.NewMangaDexService(config.Credentials.MangaDex.BaseURL, httpClient)
	source.SetPageLimit(config.Sync.PageLimit)
	if config.Credentials.MangaDex.SessionToken != "" {
		source.Adopt(config.Credentials.MangaDex.SessionToken)
	}

	dest := services.NewComickService(config.Credentials.Comick.BaseURL, httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Source:     source,
		Dest:       dest,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "mdx",
		Usage:    "Sync followed manga from MangaDex to ComicK",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
