package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"daytrip/internal/catalog"
	"daytrip/internal/geo"
)

// Placeholder aggregate ratings for generated plans.
const (
	locationTripRating = 4.5
	dayTripRating      = 4.8
)

// TripPlan is a generated itinerary. It is built per request and never stored.
type TripPlan struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Rating      float64         `json:"rating"`
	Duration    int             `json:"duration"` // minutes
	Tags        []string        `json:"tags"`
	Places      []TripPlanPlace `json:"places"`
	Days        []DaySummary    `json:"days,omitempty"`
}

// TripPlanPlace is one stop of a TripPlan.
type TripPlanPlace struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"imageUrl"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	VisitDuration int      `json:"visitDuration"`
	Rating        float64  `json:"rating"`
	Order         int      `json:"order"`
	Day           int      `json:"day,omitempty"`
	VisitTime     string   `json:"visitTime,omitempty"`
	Category      string   `json:"category,omitempty"`
	Tips          []string `json:"tips,omitempty"`
}

// DaySummary carries the heading of one day of a multi-day plan.
type DaySummary struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RadiusForHours maps a trip duration to a provider search radius in metres.
func RadiusForHours(hours float64) int {
	switch {
	case hours <= 0.5:
		return 5000
	case hours <= 1:
		return 10000
	case hours <= 2:
		return 20000
	case hours <= 3:
		return 30000
	default:
		return 50000
	}
}

// LocationTripOptions configures LocationTrip.
type LocationTripOptions struct {
	Location  string
	Hours     float64
	MinRating float64
}

// LocationTrip builds a short budgeted trip from candidate places. Candidates
// under MinRating are dropped, duplicates by ID are removed, and Select picks
// at most five stops within Hours.
func LocationTrip(candidates []catalog.Place, opts LocationTripOptions) TripPlan {
	seen := make(map[string]struct{}, len(candidates))
	var filtered []catalog.Place
	for _, p := range candidates {
		if p.Rating < opts.MinRating {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		filtered = append(filtered, p)
	}

	sorted := SortByRating(filtered)
	matrix := geo.BuildMatrix(catalog.Points(sorted))
	budget := int(opts.Hours * 60)
	selected := Select(sorted, matrix, budget)

	hours := strconv.FormatFloat(opts.Hours, 'f', -1, 64)
	plan := TripPlan{
		ID:          fmt.Sprintf("location-%s-%sh", opts.Location, hours),
		Title:       fmt.Sprintf("%s %s-hour course", opts.Location, hours),
		Description: fmt.Sprintf("A %s-hour course around %s built from its highest-rated places.", hours, opts.Location),
		Rating:      locationTripRating,
		Duration:    budget,
		Tags:        []string{"cafe", "food", opts.Location},
		Places:      make([]TripPlanPlace, 0, len(selected)),
	}
	if len(selected) > 0 {
		plan.ImageURL = selected[0].ImageURL
	}
	for i, p := range selected {
		plan.Places = append(plan.Places, TripPlanPlace{
			ID:            p.ID,
			Name:          p.Name,
			Description:   fmt.Sprintf("%s is a %s spot.", p.Name, p.Category),
			ImageURL:      p.ImageURL,
			Latitude:      p.Lat,
			Longitude:     p.Lon,
			VisitDuration: p.VisitMinutes,
			Rating:        p.Rating,
			Order:         i + 1,
		})
	}
	return plan
}

// DayTripOptions configures DayTrip.
type DayTripOptions struct {
	Location    string
	Days        int
	Preferences []string
	Style       TravelStyle
	Companion   Companion
	Rand        catalog.Rand
	// PlanID overrides the random 8-character plan id.
	PlanID string
}

// DayTrip builds a multi-day plan from candidate places.
func DayTrip(candidates []catalog.Place, opts DayTripOptions) TripPlan {
	days := Assemble(candidates, AssembleOptions{
		Location:     opts.Location,
		Days:         opts.Days,
		PlacesPerDay: opts.Style.PlacesPerDay(),
		Preferences:  opts.Preferences,
		Rand:         opts.Rand,
	})

	planID := opts.PlanID
	if planID == "" {
		planID = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}

	plan := TripPlan{
		ID:    "ai-trip-" + planID,
		Title: fmt.Sprintf("%s %d-day trip", opts.Location, opts.Days),
		Description: fmt.Sprintf("A %d-day %s in %s, tailored to your preferences.",
			opts.Days, styleDescription(opts.Style, opts.Companion), opts.Location),
		Rating:   dayTripRating,
		Duration: opts.Days * 24 * 60,
		Tags:     tripTags(opts.Location, opts.Style, opts.Companion, opts.Preferences),
		Places:   []TripPlanPlace{},
	}
	if sorted := SortByRating(candidates); len(sorted) > 0 {
		plan.ImageURL = sorted[0].ImageURL
	}

	for _, d := range days {
		plan.Days = append(plan.Days, DaySummary{Day: d.Day, Title: d.Title, Description: d.Description})
		for _, p := range d.Places {
			description := p.Description
			if description == "" {
				description = fmt.Sprintf("Enjoy your time at %s.", p.Name)
			}
			plan.Places = append(plan.Places, TripPlanPlace{
				ID:            p.ID,
				Name:          p.Name,
				Description:   description,
				ImageURL:      p.ImageURL,
				Latitude:      p.Lat,
				Longitude:     p.Lon,
				VisitDuration: p.VisitMinutes,
				Rating:        p.Rating,
				Order:         p.Order,
				Day:           d.Day,
				VisitTime:     p.VisitTime,
				Category:      string(p.Category),
				Tips:          p.Tips,
			})
		}
	}
	return plan
}
