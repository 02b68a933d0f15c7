package trips

import (
	"context"
	"errors"
	"strings"

	"daytrip/internal/catalog"
	"daytrip/internal/geo"
	"daytrip/internal/logging"
	"daytrip/internal/placeapi"
	"daytrip/internal/planner"
)

// ErrLocationRequired is returned when a request names neither a place nor coordinates.
var ErrLocationRequired = errors.New("location is required")

const (
	defaultMinRating = 3.0
	defaultHours     = 2.0
	defaultDays      = 1

	// searchRating stands in for the rating the provider does not report.
	searchRating = 4.0
	searchSize   = placeapi.MaxPageSize

	// nearbyLabel names a trip requested by coordinates alone.
	nearbyLabel = "nearby"
)

// Catalog is the subset of catalog.Catalog the trip service needs.
type Catalog interface {
	Collect(ctx context.Context, location string, prefs []string) ([]catalog.Place, error)
	CollectNearby(ctx context.Context, location string, origin *geo.Point, radiusMeters int) []catalog.Place
	ProviderSearch(ctx context.Context, q placeapi.Query) []placeapi.Document
	Rand() catalog.Rand
}

// SearchRequest asks the provider for places in an area.
type SearchRequest struct {
	Location  string
	Category  string
	MinRating *float64
}

// SearchPlace is one provider result.
type SearchPlace struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Address     string  `json:"address"`
	RoadAddress string  `json:"road_address"`
	Phone       string  `json:"phone"`
	PlaceURL    string  `json:"place_url"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
}

// SearchResult wraps provider results for an area.
type SearchResult struct {
	Location string        `json:"location"`
	Count    int           `json:"count"`
	Results  []SearchPlace `json:"results"`
}

// LocationTripRequest asks for a short trip around a place or point.
// Transport is recorded but does not change travel estimates.
type LocationTripRequest struct {
	Location  string
	Origin    *geo.Point
	Hours     float64
	Transport string
	MinRating *float64
}

// DayTripRequest asks for a multi-day plan.
type DayTripRequest struct {
	Location    string
	Preferences []string
	Days        int
	Style       string
	Companion   string
}

// Service exposes trip planning workflows.
type Service interface {
	Search(ctx context.Context, req SearchRequest) (SearchResult, error)
	LocationTrip(ctx context.Context, req LocationTripRequest) (planner.TripPlan, error)
	DayTrip(ctx context.Context, req DayTripRequest) (planner.TripPlan, error)
}

type service struct {
	catalog Catalog
}

// New wires a Service backed by the provided Catalog.
func New(c Catalog) Service {
	return &service{catalog: c}
}

// Search runs one provider query for "<location> <category>". Provider
// failures yield an empty result.
func (s *service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return SearchResult{}, ErrLocationRequired
	}

	text := location
	if category := strings.TrimSpace(req.Category); category != "" {
		text += " " + category
	}
	minRating := orDefault(req.MinRating, defaultMinRating)

	results := []SearchPlace{}
	for _, doc := range s.catalog.ProviderSearch(ctx, placeapi.Query{Text: text, Size: searchSize}) {
		if searchRating < minRating {
			continue
		}
		point, _ := doc.Coordinates()
		results = append(results, SearchPlace{
			ID:          doc.ID,
			Name:        doc.PlaceName,
			Category:    doc.CategoryName,
			Address:     doc.AddressName,
			RoadAddress: doc.RoadAddressName,
			Phone:       doc.Phone,
			PlaceURL:    doc.PlaceURL,
			Latitude:    point.Lat,
			Longitude:   point.Lon,
			Rating:      searchRating,
		})
	}
	return SearchResult{Location: location, Count: len(results), Results: results}, nil
}

func (s *service) LocationTrip(ctx context.Context, req LocationTripRequest) (planner.TripPlan, error) {
	if err := ctx.Err(); err != nil {
		return planner.TripPlan{}, err
	}
	location := strings.TrimSpace(req.Location)
	if location == "" && req.Origin == nil {
		return planner.TripPlan{}, ErrLocationRequired
	}

	hours := req.Hours
	if hours <= 0 {
		hours = defaultHours
	}
	radius := planner.RadiusForHours(hours)

	candidates := s.catalog.CollectNearby(ctx, location, req.Origin, radius)

	label := location
	if label == "" {
		label = nearbyLabel
	}
	plan := planner.LocationTrip(candidates, planner.LocationTripOptions{
		Location:  label,
		Hours:     hours,
		MinRating: orDefault(req.MinRating, defaultMinRating),
	})

	logging.WithContext(ctx).Info().
		Str("location", label).
		Float64("hours", hours).
		Str("transport", req.Transport).
		Int("radius_m", radius).
		Int("candidates", len(candidates)).
		Int("selected", len(plan.Places)).
		Msg("location trip planned")
	return plan, nil
}

func (s *service) DayTrip(ctx context.Context, req DayTripRequest) (planner.TripPlan, error) {
	if err := ctx.Err(); err != nil {
		return planner.TripPlan{}, err
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return planner.TripPlan{}, ErrLocationRequired
	}
	days := req.Days
	if days <= 0 {
		days = defaultDays
	}

	candidates, err := s.catalog.Collect(ctx, location, req.Preferences)
	if err != nil {
		return planner.TripPlan{}, err
	}

	plan := planner.DayTrip(candidates, planner.DayTripOptions{
		Location:    location,
		Days:        days,
		Preferences: req.Preferences,
		Style:       planner.ParseTravelStyle(req.Style),
		Companion:   planner.ParseCompanion(req.Companion),
		Rand:        s.catalog.Rand(),
	})

	logging.WithContext(ctx).Info().
		Str("plan_id", plan.ID).
		Str("location", location).
		Int("days", days).
		Int("candidates", len(candidates)).
		Int("places", len(plan.Places)).
		Msg("day trip planned")
	return plan, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
