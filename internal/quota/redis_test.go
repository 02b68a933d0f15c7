package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ""), mr
}

func TestRedisStoreGetCreatesCounter(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	c, err := store.Get(ctx, 9)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.UserID != 9 || c.Count != 0 || c.Version != 0 || !c.LastDate.IsZero() || !c.LastSearch.IsZero() {
		t.Fatalf("unexpected fresh counter: %+v", c)
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}
	if !mr.Exists("quota:9") {
		t.Fatal("counter key not created")
	}
}

func TestRedisStoreCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	now := at(1, 9, 0)

	old, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	ok, err := store.CompareAndSwap(ctx, old, Increment(old, now))
	if err != nil || !ok {
		t.Fatalf("first swap = %v, %v", ok, err)
	}

	// A second writer holding the stale version loses.
	ok, err = store.CompareAndSwap(ctx, old, Increment(old, now))
	if err != nil {
		t.Fatalf("stale swap: %v", err)
	}
	if ok {
		t.Fatal("stale swap should not succeed")
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Count != 1 || got.Version != 1 {
		t.Fatalf("counter = %+v, want count 1 version 1", got)
	}
	if !got.LastSearch.Equal(now) {
		t.Fatalf("LastSearch = %s, want %s", got.LastSearch, now)
	}
	if !got.LastDate.Equal(Date(now)) {
		t.Fatalf("LastDate = %s, want %s", got.LastDate, Date(now))
	}
}

func TestRedisStoreWithLimiter(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	clk := &clock{now: at(1, 9, 0)}
	l := NewLimiter(store, WithClock(clk.Now))

	for i := 0; i < DailySearchLimit; i++ {
		if _, err := l.Use(ctx, 2); err != nil {
			t.Fatalf("search %d: %v", i+1, err)
		}
		clk.Advance(CooldownMinutes * time.Minute)
	}
	if _, err := l.Use(ctx, 2); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
}

func TestRedisStoreRejectsCorruptCounter(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.HSet("quota:4", "version", "not-a-number")

	if _, err := store.Get(ctx, 4); err == nil {
		t.Fatal("expected a parse error")
	}
}
