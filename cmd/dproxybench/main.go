// Command dproxybench drives a proxy with concurrent publishers and subscribers
// and reports how many values each subscriber received.
//
// All settings come from the environment (see [Config]);
// a .env file in the working directory is loaded first if present.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", "err", err)
		os.Exit(1)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("Failed to parse configuration from environment", "err", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	res, err := Run(ctx, log, cfg)
	if err != nil {
		log.Error("Benchmark failed", "err", err)
		os.Exit(1)
	}

	res.Log(log)
}
