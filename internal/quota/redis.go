package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const dateLayout = "2006-01-02"

// RedisStore keeps counters in Redis hashes so several API instances share
// one quota. Swaps use WATCH/MULTI on the user's key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client. Keys are "<prefix><userID>"; prefix defaults to "quota:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "quota:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(userID int64) string {
	return s.prefix + strconv.FormatInt(userID, 10)
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, userID int64) (Counter, error) {
	key := s.key(userID)
	now := strconv.FormatInt(time.Now().UnixNano(), 10)

	// Lazily create; HSETNX leaves an existing counter alone.
	if _, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, "version", 0)
		pipe.HSetNX(ctx, key, "count", 0)
		pipe.HSetNX(ctx, key, "created_at", now)
		pipe.HSetNX(ctx, key, "updated_at", now)
		return nil
	}); err != nil {
		return Counter{}, fmt.Errorf("init counter: %w", err)
	}

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return Counter{}, fmt.Errorf("read counter: %w", err)
	}
	return decodeCounter(userID, fields)
}

// CompareAndSwap implements Store.
func (s *RedisStore) CompareAndSwap(ctx context.Context, old, next Counter) (bool, error) {
	key := s.key(old.UserID)
	swapped := false

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		version, err := tx.HGet(ctx, key, "version").Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if version != old.Version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, encodeCounter(next, old.Version+1))
			return nil
		})
		if err == nil {
			swapped = true
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("swap counter: %w", err)
	}
	return swapped, nil
}

func encodeCounter(c Counter, version int64) map[string]any {
	fields := map[string]any{
		"version":     version,
		"count":       c.Count,
		"last_date":   "",
		"last_search": "",
		"updated_at":  strconv.FormatInt(time.Now().UnixNano(), 10),
	}
	if !c.LastDate.IsZero() {
		fields["last_date"] = c.LastDate.Format(dateLayout)
	}
	if !c.LastSearch.IsZero() {
		fields["last_search"] = strconv.FormatInt(c.LastSearch.UnixNano(), 10)
	}
	return fields
}

func decodeCounter(userID int64, fields map[string]string) (Counter, error) {
	c := Counter{UserID: userID}
	var err error

	if c.Version, err = strconv.ParseInt(fields["version"], 10, 64); err != nil {
		return Counter{}, fmt.Errorf("parse version: %w", err)
	}
	if c.Count, err = strconv.Atoi(fields["count"]); err != nil {
		return Counter{}, fmt.Errorf("parse count: %w", err)
	}
	if v := fields["last_date"]; v != "" {
		if c.LastDate, err = time.Parse(dateLayout, v); err != nil {
			return Counter{}, fmt.Errorf("parse last_date: %w", err)
		}
	}
	if c.LastSearch, err = unixNano(fields["last_search"]); err != nil {
		return Counter{}, fmt.Errorf("parse last_search: %w", err)
	}
	if c.CreatedAt, err = unixNano(fields["created_at"]); err != nil {
		return Counter{}, fmt.Errorf("parse created_at: %w", err)
	}
	if c.UpdatedAt, err = unixNano(fields["updated_at"]); err != nil {
		return Counter{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return c, nil
}

func unixNano(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, n), nil
}
