package planner

import "daytrip/internal/catalog"

// Visit windows keyed by position within a day.
const (
	WindowMorning     = "09:00–11:00"
	WindowLunch       = "12:00–13:30"
	WindowAfternoon   = "14:00–16:00"
	WindowDinner      = "18:00–19:30"
	WindowEvening     = "20:00–21:30"
	WindowUnscheduled = "unscheduled"
)

// orderByDaypart arranges a day's places as morning, lunch, afternoon,
// dinner, evening, night. Places no daypart claims are appended in their
// original order, so every input place appears exactly once.
func orderByDaypart(places []catalog.Place) []catalog.Place {
	var attractions, restaurants, cafes, shopping, others []catalog.Place
	for _, p := range places {
		switch p.Category {
		case catalog.CategoryAttraction, catalog.CategoryPetFriendly:
			attractions = append(attractions, p)
		case catalog.CategoryRestaurant:
			restaurants = append(restaurants, p)
		case catalog.CategoryCafe:
			cafes = append(cafes, p)
		case catalog.CategoryShopping:
			shopping = append(shopping, p)
		default:
			others = append(others, p)
		}
	}

	var lunch, dinner []catalog.Place
	switch {
	case len(restaurants) >= 2:
		lunch = restaurants[:1]
		dinner = restaurants[1:2]
		restaurants = restaurants[2:]
	case len(restaurants) == 1:
		lunch = restaurants[:1]
		restaurants = nil
	}

	morning := head(attractions, 0, 1)
	afternoon := concat(head(attractions, 1, 2), head(shopping, 0, 1), head(others, 0, 1))
	evening := concat(head(shopping, 1, 2), head(cafes, 0, 1))
	night := concat(head(cafes, 1, len(cafes)), restaurants)

	ordered := concat(morning, lunch, afternoon, dinner, evening, night)

	placed := make(map[string]struct{}, len(ordered))
	for _, p := range ordered {
		placed[p.ID] = struct{}{}
	}
	for _, p := range places {
		if _, ok := placed[p.ID]; !ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// VisitWindow suggests a time window for the place at position in a day.
// It is a presentation hint keyed by position, not a schedule.
func VisitWindow(position int, category catalog.Category) string {
	switch {
	case position == 0:
		return WindowMorning
	case position == 1 && category == catalog.CategoryRestaurant:
		return WindowLunch
	case position == 2:
		return WindowAfternoon
	case position == 3 && category == catalog.CategoryRestaurant:
		return WindowDinner
	case position == 4:
		return WindowEvening
	default:
		return WindowUnscheduled
	}
}

// head returns s[from:to] clamped to the bounds of s.
func head(s []catalog.Place, from, to int) []catalog.Place {
	if from >= len(s) || from >= to {
		return nil
	}
	return s[from:min(to, len(s))]
}

func concat(parts ...[]catalog.Place) []catalog.Place {
	var out []catalog.Place
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
