package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"daytrip/internal/config"
	"daytrip/internal/store"
)

// ensureAdmin creates or promotes the configured staff account. It is a no-op
// when no admin credentials are configured.
func ensureAdmin(ctx context.Context, admin config.AdminConfig, dataStore *store.Store) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}
	created, err := dataStore.EnsureStaff(ctx, admin.Email, admin.Password)
	if err != nil {
		return fmt.Errorf("ensure staff %s: %w", admin.Email, err)
	}
	log.Info().Str("email", admin.Email).Bool("created", created).Msg("staff account ready")
	return nil
}
