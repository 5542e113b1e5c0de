package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/subform-dev/subform/internal/client"
	"github.com/subform-dev/subform/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	if lvl, err := log.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, lvl)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(config.Backend.TimeoutSeconds) * time.Second,
	}
	backend := client.NewClient(config.Backend.BaseURL, client.Options{
		HTTPClient: httpClient,
		RateLimit:  config.Backend.RateLimit,
	})

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Client:     backend,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "subform",
		Usage:    "Formalize video captions through the captioning backend",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
