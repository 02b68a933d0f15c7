package planner

import (
	"slices"

	"daytrip/internal/catalog"
)

const (
	// MaxSelected caps the places in a single budgeted itinerary.
	MaxSelected = 5
	// MinRemainingMinutes stops selection once less budget than this is left.
	MinRemainingMinutes = 30
	// FallbackTravelMinutes is used when the matrix has no entry for a pair.
	FallbackTravelMinutes = 30
)

// SortByRating returns a copy of places ordered by rating, highest first.
// Places with equal ratings keep their relative order.
func SortByRating(places []catalog.Place) []catalog.Place {
	sorted := slices.Clone(places)
	slices.SortStableFunc(sorted, func(a, b catalog.Place) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Select greedily picks an ordered itinerary that fits budgetMinutes.
//
// matrix is indexed by the position of each place in places. Candidates are
// visited in rating order. The highest-rated place is always taken; each later
// candidate is taken when its visit time plus the travel time from the last
// taken place still fits the remaining budget. Selection stops at MaxSelected
// places or when less than MinRemainingMinutes remain.
//
// The result is not globally optimal: a skipped candidate is never revisited.
func Select(places []catalog.Place, matrix [][]int, budgetMinutes int) []catalog.Place {
	if len(places) == 0 {
		return nil
	}

	order := make([]int, len(places))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case places[a].Rating > places[b].Rating:
			return -1
		case places[a].Rating < places[b].Rating:
			return 1
		default:
			return 0
		}
	})

	first := order[0]
	selected := []catalog.Place{places[first]}
	remaining := budgetMinutes - places[first].VisitMinutes
	current := first

	for _, idx := range order[1:] {
		candidate := places[idx]
		cost := candidate.VisitMinutes + travelMinutes(matrix, current, idx)
		if remaining >= cost {
			selected = append(selected, candidate)
			remaining -= cost
			current = idx
		}

		if remaining < MinRemainingMinutes || len(selected) >= MaxSelected {
			break
		}
	}
	return selected
}

func travelMinutes(matrix [][]int, from, to int) int {
	if from < 0 || from >= len(matrix) || to < 0 || to >= len(matrix[from]) {
		return FallbackTravelMinutes
	}
	return matrix[from][to]
}
