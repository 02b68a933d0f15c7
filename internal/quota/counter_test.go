package quota

import (
	"testing"
	"time"
)

var kst = time.FixedZone("KST", 9*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, kst)
}

func TestFreshCounter(t *testing.T) {
	now := at(1, 9, 0)
	var c Counter
	if !CanSearch(c, now) {
		t.Fatal("a fresh counter should allow a search")
	}
	if got := Remaining(c, now); got != DailySearchLimit {
		t.Fatalf("Remaining = %d, want %d", got, DailySearchLimit)
	}
	if got := CooldownSeconds(c, now); got != 0 {
		t.Fatalf("CooldownSeconds = %d, want 0", got)
	}
}

func TestThreeIncrementsExhaustTheDay(t *testing.T) {
	var c Counter
	now := at(1, 9, 0)
	for i := 0; i < DailySearchLimit; i++ {
		if !CanSearch(c, now) {
			t.Fatalf("search %d rejected", i+1)
		}
		c = Increment(c, now)
		now = now.Add(11 * time.Minute)
	}

	if CanSearch(c, now) {
		t.Fatal("fourth search should be rejected")
	}
	if got := Remaining(c, now); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}
	if c.Count != DailySearchLimit {
		t.Fatalf("Count = %d, want %d", c.Count, DailySearchLimit)
	}
}

func TestCooldown(t *testing.T) {
	start := at(1, 9, 0)
	c := Increment(Counter{}, start)

	tests := []struct {
		after time.Duration
		want  int
		can   bool
	}{
		{0, 600, false},
		{90 * time.Second, 510, false},
		{599*time.Second + 500*time.Millisecond, 0, true},
		{10 * time.Minute, 0, true},
		{time.Hour, 0, true},
	}
	for _, tc := range tests {
		now := start.Add(tc.after)
		if got := CooldownSeconds(c, now); got != tc.want {
			t.Errorf("CooldownSeconds after %s = %d, want %d", tc.after, got, tc.want)
		}
		if got := CanSearch(c, now); got != tc.can {
			t.Errorf("CanSearch after %s = %v, want %v", tc.after, got, tc.can)
		}
	}
}

func TestNewDayRefreshesQuota(t *testing.T) {
	c := Counter{Count: DailySearchLimit, LastDate: Date(at(1, 23, 55)), LastSearch: at(1, 23, 55)}

	nextMorning := at(2, 0, 1)
	if !CanSearch(c, nextMorning) {
		t.Fatal("a new day should reopen the gate even inside the cooldown")
	}
	if got := Remaining(c, nextMorning); got != DailySearchLimit {
		t.Fatalf("Remaining = %d, want %d", got, DailySearchLimit)
	}

	c = Increment(c, nextMorning)
	if c.Count != 1 {
		t.Fatalf("Count after first search of the day = %d, want 1", c.Count)
	}
	if !c.LastDate.Equal(Date(nextMorning)) {
		t.Fatalf("LastDate = %s, want %s", c.LastDate, Date(nextMorning))
	}
}

func TestDateUsesServerLocalCalendar(t *testing.T) {
	// 2025-03-01 23:30 UTC is already 2 March in Seoul.
	utc := time.Date(2025, time.March, 1, 23, 30, 0, 0, time.UTC)
	if got := Date(utc.In(kst)); got.Day() != 2 {
		t.Fatalf("Date in KST = %s, want 2 March", got)
	}
	if got := Date(utc); got.Day() != 1 {
		t.Fatalf("Date in UTC = %s, want 1 March", got)
	}
}

func TestResetKeepsCooldown(t *testing.T) {
	now := at(1, 9, 0)
	c := Increment(Increment(Counter{}, now), now)
	c = Reset(c, now)

	if c.Count != 0 {
		t.Fatalf("Count = %d, want 0", c.Count)
	}
	if got := Remaining(c, now); got != DailySearchLimit {
		t.Fatalf("Remaining = %d, want %d", got, DailySearchLimit)
	}
	if CooldownSeconds(c, now) == 0 {
		t.Fatal("reset should not clear the cooldown")
	}
}

func TestStatusOf(t *testing.T) {
	now := at(1, 9, 0)
	s := StatusOf(Counter{}, now)
	if s.LastSearchTime != nil || !s.CanSearch || s.Remaining != 3 || s.CooldownMinutes != 10 {
		t.Fatalf("unexpected status for fresh counter: %+v", s)
	}

	s = StatusOf(Increment(Counter{}, now), now)
	if s.LastSearchTime == nil || !s.LastSearchTime.Equal(now) {
		t.Fatalf("LastSearchTime = %v, want %v", s.LastSearchTime, now)
	}
	if s.SearchCount != 1 || s.Remaining != 2 || s.CanSearch {
		t.Fatalf("unexpected status after one search: %+v", s)
	}
}
