package main

import (
	"context"
	"errors"
	"os"

	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
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

	var provider services.Provider
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify); err == nil {
			provider = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Provider: provider,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "jukebox",
		Usage:    "Album review & list server backed by the Spotify catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			logger.Error("missing Spotify credentials, run 'jukebox setup config' and fill in config.toml")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
