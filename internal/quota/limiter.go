package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daytrip/internal/logging"
)

var (
	// ErrQuotaExceeded is returned by Use when the daily limit or the cooldown
	// blocks the search.
	ErrQuotaExceeded = errors.New("search quota exceeded")
	// ErrConflict is returned when concurrent updates keep winning the swap.
	ErrConflict = errors.New("search counter update conflict")
)

const maxSwapAttempts = 5

// Store persists counters.
type Store interface {
	// Get returns the user's counter, creating an empty one if needed.
	Get(ctx context.Context, userID int64) (Counter, error)
	// CompareAndSwap writes next only if the stored version still equals
	// old.Version. It reports false when another writer got there first.
	CompareAndSwap(ctx context.Context, old, next Counter) (bool, error)
}

// Limiter applies the quota rules against a Store.
type Limiter struct {
	store Store
	now   func() time.Time
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now. Dates are taken in the returned time's location.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a Limiter over store.
func NewLimiter(store Store, opts ...Option) *Limiter {
	l := &Limiter{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Status returns the user's current quota.
func (l *Limiter) Status(ctx context.Context, userID int64) (Status, error) {
	c, err := l.store.Get(ctx, userID)
	if err != nil {
		return Status{}, fmt.Errorf("load search counter: %w", err)
	}
	return StatusOf(c, l.now()), nil
}

// Use consumes one search. When the gate is closed it returns the current
// status together with ErrQuotaExceeded.
func (l *Limiter) Use(ctx context.Context, userID int64) (Status, error) {
	return l.swap(ctx, userID, func(c Counter, now time.Time) (Counter, error) {
		if !CanSearch(c, now) {
			return c, ErrQuotaExceeded
		}
		return Increment(c, now), nil
	})
}

// Reset zeroes today's count.
func (l *Limiter) Reset(ctx context.Context, userID int64) (Status, error) {
	return l.swap(ctx, userID, func(c Counter, now time.Time) (Counter, error) {
		return Reset(c, now), nil
	})
}

func (l *Limiter) swap(ctx context.Context, userID int64, apply func(Counter, time.Time) (Counter, error)) (Status, error) {
	for attempt := 1; attempt <= maxSwapAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Status{}, err
		}

		current, err := l.store.Get(ctx, userID)
		if err != nil {
			return Status{}, fmt.Errorf("load search counter: %w", err)
		}

		now := l.now()
		next, err := apply(current, now)
		if err != nil {
			return StatusOf(current, now), err
		}

		ok, err := l.store.CompareAndSwap(ctx, current, next)
		if err != nil {
			return Status{}, fmt.Errorf("update search counter: %w", err)
		}
		if ok {
			return StatusOf(next, now), nil
		}

		logging.WithContext(ctx).Debug().
			Int64("user_id", userID).
			Int("attempt", attempt).
			Msg("search counter changed concurrently, retrying")
	}
	return Status{}, ErrConflict
}
