package store

import (
	"context"
	"database/sql"
	"fmt"

	"daytrip/internal/quota"
)

// SearchCounter returns the user's search counter, creating it on first use.
func (s *Store) SearchCounter(ctx context.Context, userID int64) (quota.Counter, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO user_search_counts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return quota.Counter{}, fmt.Errorf("ensure search count: %w", err)
	}

	var (
		c          = quota.Counter{UserID: userID}
		lastDate   sql.NullTime
		lastSearch sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT search_count, last_search_date, last_search_time, version, created_at, updated_at
		FROM user_search_counts
		WHERE user_id = $1
	`, userID).Scan(&c.Count, &lastDate, &lastSearch, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return quota.Counter{}, fmt.Errorf("select search count: %w", err)
	}
	if lastDate.Valid {
		c.LastDate = quota.Date(lastDate.Time)
	}
	if lastSearch.Valid {
		c.LastSearch = lastSearch.Time
	}
	return c, nil
}

// SwapSearchCounter writes next when the stored version still equals
// old.Version, bumping the version.
func (s *Store) SwapSearchCounter(ctx context.Context, old, next quota.Counter) (bool, error) {
	var lastDate, lastSearch any
	if !next.LastDate.IsZero() {
		lastDate = next.LastDate.Format("2006-01-02")
	}
	if !next.LastSearch.IsZero() {
		lastSearch = next.LastSearch
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user_search_counts
		SET search_count = $3,
		    last_search_date = $4,
		    last_search_time = $5,
		    version = version + 1,
		    updated_at = NOW()
		WHERE user_id = $1 AND version = $2
	`, old.UserID, old.Version, next.Count, lastDate, lastSearch)
	if err != nil {
		return false, fmt.Errorf("update search count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update search count: %w", err)
	}
	return n == 1, nil
}

// SearchCounts adapts the store to quota.Store.
func (s *Store) SearchCounts() quota.Store {
	return searchCounts{s}
}

type searchCounts struct {
	s *Store
}

func (c searchCounts) Get(ctx context.Context, userID int64) (quota.Counter, error) {
	return c.s.SearchCounter(ctx, userID)
}

func (c searchCounts) CompareAndSwap(ctx context.Context, old, next quota.Counter) (bool, error) {
	return c.s.SwapSearchCounter(ctx, old, next)
}
