package quota

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLimiterUse(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: at(1, 9, 0)}
	l := NewLimiter(NewMemoryStore(), WithClock(clk.Now))

	for i := 1; i <= DailySearchLimit; i++ {
		s, err := l.Use(ctx, 7)
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if s.Remaining != DailySearchLimit-i {
			t.Fatalf("search %d: remaining = %d", i, s.Remaining)
		}
		clk.Advance(CooldownMinutes * time.Minute)
	}

	s, err := l.Use(ctx, 7)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("fourth search err = %v, want ErrQuotaExceeded", err)
	}
	if s.Remaining != 0 || s.SearchCount != DailySearchLimit {
		t.Fatalf("rejected status = %+v", s)
	}

	clk.Advance(24 * time.Hour)
	if _, err := l.Use(ctx, 7); err != nil {
		t.Fatalf("search on the next day: %v", err)
	}
}

func TestLimiterCooldownRejects(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: at(1, 9, 0)}
	l := NewLimiter(NewMemoryStore(), WithClock(clk.Now))

	if _, err := l.Use(ctx, 1); err != nil {
		t.Fatalf("first search: %v", err)
	}
	clk.Advance(4 * time.Minute)

	s, err := l.Use(ctx, 1)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	if s.CooldownSeconds != 360 || s.Remaining != 2 {
		t.Fatalf("status = %+v, want 360s cooldown and 2 remaining", s)
	}
}

func TestLimiterReset(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: at(1, 9, 0)}
	l := NewLimiter(NewMemoryStore(), WithClock(clk.Now))

	for i := 0; i < DailySearchLimit; i++ {
		if _, err := l.Use(ctx, 3); err != nil {
			t.Fatalf("search %d: %v", i+1, err)
		}
		clk.Advance(CooldownMinutes * time.Minute)
	}

	s, err := l.Reset(ctx, 3)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Remaining != DailySearchLimit {
		t.Fatalf("remaining after reset = %d", s.Remaining)
	}

	s, err = l.Status(ctx, 3)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !s.CanSearch {
		t.Fatalf("status after reset = %+v", s)
	}
}

func TestLimiterConcurrentUse(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: at(1, 9, 0)}
	l := NewLimiter(NewMemoryStore(), WithClock(clk.Now))

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Use(ctx, 42)
			switch {
			case err == nil:
				mu.Lock()
				accepted++
				mu.Unlock()
			case errors.Is(err, ErrQuotaExceeded):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// The cooldown closes the gate after the first accepted search.
	if accepted != 1 {
		t.Fatalf("accepted = %d, want 1", accepted)
	}
	s, err := l.Status(ctx, 42)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if s.SearchCount != 1 {
		t.Fatalf("search count = %d, want 1", s.SearchCount)
	}
}

type flakyStore struct {
	*MemoryStore
	losses int
}

func (f *flakyStore) CompareAndSwap(ctx context.Context, old, next Counter) (bool, error) {
	if f.losses > 0 {
		f.losses--
		return false, nil
	}
	return f.MemoryStore.CompareAndSwap(ctx, old, next)
}

func TestLimiterRetriesLostSwaps(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: at(1, 9, 0)}

	l := NewLimiter(&flakyStore{MemoryStore: NewMemoryStore(), losses: 2}, WithClock(clk.Now))
	if _, err := l.Use(ctx, 5); err != nil {
		t.Fatalf("Use after two lost swaps: %v", err)
	}

	l = NewLimiter(&flakyStore{MemoryStore: NewMemoryStore(), losses: maxSwapAttempts}, WithClock(clk.Now))
	if _, err := l.Use(ctx, 5); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}
