package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	log.Info().
		Int("sessions", cfg.Sessions).
		Dur("duration", cfg.Duration).
		Uint64("seed", cfg.Seed).
		Int("max_pieces", cfg.MaxPieces).
		Msg("starting soak")

	report := &Report{
		Duration:       cfg.Duration,
		Sessions:       cfg.Sessions,
		Seed:           cfg.Seed,
		MaxPieces:      cfg.MaxPieces,
		GCPauseMetrics: cfg.GCPause,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx := context.Background()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	results := make([]*sessionResult, cfg.Sessions)
	g, ctx := errgroup.WithContext(ctx)
	startTime := time.Now()
	for i := range cfg.Sessions {
		seed := cfg.Seed + uint64(i)
		logger := log.With().Int("session", i).Uint64("seed", seed).Logger()
		g.Go(func() error {
			res, err := soakSession(ctx, seed, cfg.MaxPieces, logger)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("invariant violated")
	}

	report.TotalTime = time.Since(startTime)
	for _, res := range results {
		report.Add(res)
	}
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Int("games", report.Games).Int("pieces", report.Pieces).Msg("soak finished")

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
}
