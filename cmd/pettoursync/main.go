// Command pettoursync refreshes the pet-friendly spot mirror once and exits.
// It is meant to run from cron.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"daytrip/internal/config"
	"daytrip/internal/logging"
	"daytrip/internal/pettour"
	"daytrip/internal/store"
)

const runTimeout = 10 * time.Minute

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}))

	if cfg.PetTour.APIKey == "" {
		log.Fatal().Msg("TOUR_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	db, err := store.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	syncer := pettour.NewSyncer(
		pettour.NewClient(cfg.PetTour.APIKey, cfg.PetTour.BaseURL, 0),
		store.New(db),
		log.Logger.With().Str("component", "pettour").Logger(),
	)

	if _, err := syncer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("pet tour sync failed")
		os.Exit(1)
	}
}
