package pettour

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"daytrip/internal/models"
)

// Fetcher downloads the full upstream list.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.PetTourSpot, error)
}

// Replacer swaps the stored spots for a new set.
type Replacer interface {
	ReplacePetTourSpots(ctx context.Context, spots []models.PetTourSpot) (int, error)
}

// Result summarises one sync run.
type Result struct {
	Fetched    int   `json:"fetched"`
	Stored     int   `json:"stored"`
	DurationMS int64 `json:"duration_ms"`
}

// Syncer mirrors the upstream pet tour list into storage.
type Syncer struct {
	fetcher  Fetcher
	replacer Replacer
	logger   zerolog.Logger
}

// NewSyncer wires a Syncer.
func NewSyncer(fetcher Fetcher, replacer Replacer, logger zerolog.Logger) *Syncer {
	return &Syncer{fetcher: fetcher, replacer: replacer, logger: logger}
}

// Run fetches first and only then replaces the stored data, so an upstream
// failure leaves the existing rows untouched.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	spots, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("pet tour fetch failed, keeping existing data")
		return Result{}, fmt.Errorf("fetch pet tour spots: %w", err)
	}
	s.logger.Info().Int("fetched", len(spots)).Msg("pet tour list received")

	stored, err := s.replacer.ReplacePetTourSpots(ctx, spots)
	if err != nil {
		s.logger.Error().Err(err).Msg("pet tour replace failed")
		return Result{}, fmt.Errorf("replace pet tour spots: %w", err)
	}

	elapsed := time.Since(start)
	res := Result{Fetched: len(spots), Stored: stored, DurationMS: elapsed.Milliseconds()}
	s.logger.Info().
		Int("fetched", res.Fetched).
		Int("stored", res.Stored).
		Dur("elapsed", elapsed).
		Msg("pet tour sync complete")
	return res, nil
}
