package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the soak run parameters. Environment variables (optionally from a .env file)
// set the defaults and flags override them.
type Config struct {
	Duration  time.Duration `env:"TETRIS_SOAK_DURATION"   envDefault:"10s"`
	Sessions  int           `env:"TETRIS_SOAK_SESSIONS"   envDefault:"4"`
	Seed      uint64        `env:"TETRIS_SOAK_SEED"       envDefault:"1"`
	LogLevel  string        `env:"TETRIS_SOAK_LOG_LEVEL"  envDefault:"info"`
	MaxPieces int           `env:"TETRIS_SOAK_MAX_PIECES" envDefault:"0"`
	GCPause   bool          `env:"TETRIS_SOAK_GC_PAUSE"`
}

func loadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("tetris-soak", flag.ContinueOnError)
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "How long to keep sessions playing.")
	fs.IntVar(&cfg.Sessions, "sessions", cfg.Sessions, "Number of sessions to run in parallel.")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Base seed; session n uses seed+n.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level (trace, debug, info, warn, error).")
	fs.IntVar(&cfg.MaxPieces, "max-pieces", cfg.MaxPieces, "Stop each session after this many pieces; 0 means no limit.")
	fs.BoolVar(&cfg.GCPause, "gc-pause-metrics", cfg.GCPause, "Include GC pause totals in the report.")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch {
	case cfg.Sessions < 1:
		return cfg, fmt.Errorf("sessions must be positive, got %d", cfg.Sessions)
	case cfg.MaxPieces < 0:
		return cfg, fmt.Errorf("max pieces must not be negative, got %d", cfg.MaxPieces)
	case cfg.Duration <= 0 && cfg.MaxPieces == 0:
		return cfg, fmt.Errorf("need a positive duration or a piece limit")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}
