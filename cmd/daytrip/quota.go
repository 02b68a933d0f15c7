package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"daytrip/internal/config"
	"daytrip/internal/quota"
	"daytrip/internal/store"
)

// newQuotaStore returns the counter store selected by QUOTA_BACKEND and a
// function releasing its resources.
func newQuotaStore(ctx context.Context, cfg config.QuotaConfig, dataStore *store.Store) (quota.Store, func(), error) {
	switch cfg.Backend {
	case config.QuotaBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}

		log.Info().Str("addr", cfg.RedisAddr).Msg("search quota backed by redis")
		return quota.NewRedisStore(client, ""), func() { _ = client.Close() }, nil
	default:
		log.Info().Msg("search quota backed by postgres")
		return dataStore.SearchCounts(), func() {}, nil
	}
}
