package quota

import "time"

const (
	// DailySearchLimit is the number of searches a user may run per calendar day.
	DailySearchLimit = 3
	// CooldownMinutes is the wait enforced after each search.
	CooldownMinutes = 10
)

// Counter is the per-user search usage record.
type Counter struct {
	UserID int64
	Count  int
	// LastDate is the server-local calendar date of the last increment or
	// reset, stored as midnight UTC. Zero when never set.
	LastDate time.Time
	// LastSearch is the instant of the last increment. Zero when the user has
	// never searched.
	LastSearch time.Time
	// Version is bumped by the store on every successful swap.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Date returns the calendar date of t, in t's own location, as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stale reports whether the stored date is before today.
func stale(c Counter, now time.Time) bool {
	if c.LastDate.IsZero() {
		return false
	}
	return Date(c.LastDate).Before(Date(now))
}

// CanSearch reports whether a search is allowed at now.
func CanSearch(c Counter, now time.Time) bool {
	if stale(c, now) {
		return true
	}
	if c.Count >= DailySearchLimit {
		return false
	}
	return CooldownSeconds(c, now) == 0
}

// Remaining returns the searches left today.
func Remaining(c Counter, now time.Time) int {
	if stale(c, now) {
		return DailySearchLimit
	}
	return max(0, DailySearchLimit-c.Count)
}

// CooldownSeconds returns the whole seconds until the cooldown ends.
func CooldownSeconds(c Counter, now time.Time) int {
	if c.LastSearch.IsZero() {
		return 0
	}
	end := c.LastSearch.Add(CooldownMinutes * time.Minute)
	return max(0, int(end.Sub(now)/time.Second))
}

// Increment records a search at now. A stale count is zeroed first.
func Increment(c Counter, now time.Time) Counter {
	if stale(c, now) {
		c.Count = 0
	}
	c.Count++
	c.LastSearch = now
	c.LastDate = Date(now)
	return c
}

// Reset zeroes the count and stamps today's date. The cooldown is untouched.
func Reset(c Counter, now time.Time) Counter {
	c.Count = 0
	c.LastDate = Date(now)
	return c
}

// Status is the caller-facing view of a Counter at a given instant.
type Status struct {
	DailyLimit      int        `json:"daily_limit"`
	SearchCount     int        `json:"search_count"`
	Remaining       int        `json:"remaining_searches"`
	CooldownSeconds int        `json:"cooldown_seconds"`
	CooldownMinutes int        `json:"cooldown_minutes"`
	CanSearch       bool       `json:"can_search"`
	LastSearchTime  *time.Time `json:"last_search_time"`
}

// StatusOf evaluates c at now.
func StatusOf(c Counter, now time.Time) Status {
	s := Status{
		DailyLimit:      DailySearchLimit,
		SearchCount:     c.Count,
		Remaining:       Remaining(c, now),
		CooldownSeconds: CooldownSeconds(c, now),
		CooldownMinutes: CooldownMinutes,
		CanSearch:       CanSearch(c, now),
	}
	if !c.LastSearch.IsZero() {
		last := c.LastSearch
		s.LastSearchTime = &last
	}
	return s
}
