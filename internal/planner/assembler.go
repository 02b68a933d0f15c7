package planner

import (
	"fmt"
	"strings"

	"daytrip/internal/catalog"
)

// AssembleOptions configures Assemble.
type AssembleOptions struct {
	Location     string
	Days         int
	PlacesPerDay int
	Preferences  []string
	// Rand drives tip sampling. Defaults to catalog.DefaultRand.
	Rand catalog.Rand
}

// PlannedPlace is a place positioned within a day.
type PlannedPlace struct {
	catalog.Place
	Order     int
	VisitTime string
	Tips      []string
}

// DayPlan is one day of a multi-day itinerary.
type DayPlan struct {
	Day         int
	Title       string
	Description string
	Places      []PlannedPlace
}

type buckets struct {
	attractions []catalog.Place
	restaurants []catalog.Place
	cafes       []catalog.Place
	pets        []catalog.Place
	shopping    []catalog.Place
	others      []catalog.Place
}

func bucketize(sorted []catalog.Place) buckets {
	var b buckets
	for _, p := range sorted {
		switch p.Category {
		case catalog.CategoryAttraction:
			b.attractions = append(b.attractions, p)
		case catalog.CategoryRestaurant:
			b.restaurants = append(b.restaurants, p)
		case catalog.CategoryCafe:
			b.cafes = append(b.cafes, p)
		case catalog.CategoryPetFriendly:
			b.pets = append(b.pets, p)
		case catalog.CategoryShopping:
			b.shopping = append(b.shopping, p)
		default:
			b.others = append(b.others, p)
		}
	}
	return b
}

func (b buckets) all() []catalog.Place {
	return concat(b.attractions, b.restaurants, b.cafes, b.pets, b.shopping, b.others)
}

// Assemble splits places into per-day itineraries.
//
// Each day draws two attractions and two restaurants, one cafe when "cafe" is
// a preference and one pet-friendly place when "pet" is, fills the remaining
// slots from the other bucket, then backfills with the best-rated places not
// already in the day. Assembly stops at the first day that gets no places.
func Assemble(places []catalog.Place, opts AssembleOptions) []DayPlan {
	r := opts.Rand
	if r == nil {
		r = catalog.DefaultRand
	}
	perDay := opts.PlacesPerDay
	if perDay <= 0 {
		perDay = StyleBalanced.PlacesPerDay()
	}

	b := bucketize(SortByRating(places))
	wantsCafe := catalog.HasPreference(opts.Preferences, "cafe") || catalog.HasPreference(opts.Preferences, "카페")
	wantsPet := catalog.HasPreference(opts.Preferences, "pet")

	var days []DayPlan
	for day := 1; day <= opts.Days; day++ {
		var picked []catalog.Place
		picked = append(picked, window(b.attractions, 2, day)...)
		picked = append(picked, window(b.restaurants, 2, day)...)
		if wantsCafe {
			picked = append(picked, window(b.cafes, 1, day)...)
		}
		if wantsPet && len(b.pets) > 0 {
			picked = append(picked, window(b.pets, 1, day)...)
		}
		if slots := perDay - len(picked); slots > 0 {
			picked = append(picked, window(b.others, slots, day)...)
		}
		if len(picked) < perDay {
			picked = append(picked, backfill(b, picked, perDay-len(picked))...)
		}

		if len(picked) == 0 {
			break
		}

		plan := DayPlan{
			Day:         day,
			Title:       fmt.Sprintf("Day %d: %s trip", day, opts.Location),
			Description: dailyDescription(picked, day, opts.Location),
		}
		for i, p := range orderByDaypart(picked) {
			plan.Places = append(plan.Places, PlannedPlace{
				Place:     p,
				Order:     i + 1,
				VisitTime: VisitWindow(i, p.Category),
				Tips:      Tips(p.Category, r),
			})
		}
		days = append(days, plan)
	}
	return days
}

// window returns bucket[min(k*(day-1), n-1) : min(k*day, n)].
//
// The start index is clamped to the last element, so once a bucket runs out
// every later day repeats its last place:
//
//	n  k  day 1   day 2   day 3
//	0  2  []      []      []
//	1  2  [a]     [a]     [a]
//	2  2  [a b]   [b]     [b]
//	3  2  [a b]   [c]     [c]
//	5  2  [a b]   [c d]   [e]
//	2  1  [a]     [b]     [b]
func window(bucket []catalog.Place, k, day int) []catalog.Place {
	n := len(bucket)
	if n == 0 || k <= 0 || day <= 0 {
		return nil
	}
	start := min(k*(day-1), n-1)
	end := min(k*day, n)
	if start >= end {
		return nil
	}
	return bucket[start:end]
}

// backfill returns up to need of the best-rated places not already picked.
func backfill(b buckets, picked []catalog.Place, need int) []catalog.Place {
	taken := make(map[string]struct{}, len(picked))
	for _, p := range picked {
		taken[p.ID] = struct{}{}
	}

	var pool []catalog.Place
	for _, p := range b.all() {
		if _, ok := taken[p.ID]; !ok {
			pool = append(pool, p)
		}
	}
	pool = SortByRating(pool)
	return pool[:min(need, len(pool))]
}

func dailyDescription(places []catalog.Place, day int, location string) string {
	var order []catalog.Category
	counts := make(map[catalog.Category]int)
	for _, p := range places {
		if _, ok := counts[p.Category]; !ok {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	parts := make([]string, 0, len(order))
	for _, c := range order {
		parts = append(parts, fmt.Sprintf("%s (%d)", c, counts[c]))
	}
	covering := "a variety of sights"
	if len(parts) > 0 {
		covering = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Day %d in %s covering %s.", day, location, covering)
}
