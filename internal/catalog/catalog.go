package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"daytrip/internal/geo"
	"daytrip/internal/logging"
	"daytrip/internal/models"
	"daytrip/internal/placeapi"
)

const (
	attractionCap = 20
	foodCap       = 10
	petCap        = 10

	// providerFloor is the collected count below which the provider is consulted.
	providerFloor = 10
	providerSize  = 10

	fallbackKeyword = "명소"
)

// Fixed ratings for local rows on the trip planner path.
const (
	attractionRating = 4.5
	foodRating       = 4.3
	petRating        = 4.6
)

// providerSuffixes are appended to a location to form provider queries:
// attractions, restaurants and cafes.
var providerSuffixes = []string{"관광지", "맛집", "카페"}

// Store is the local storage the catalog reads from.
type Store interface {
	SearchAttractions(ctx context.Context, q models.CatalogQuery) ([]models.Attraction, error)
	SearchFoods(ctx context.Context, q models.CatalogQuery) ([]models.Food, error)
	SearchPetTourSpots(ctx context.Context, q models.CatalogQuery) ([]models.PetTourSpot, error)
}

// Catalog gathers candidate places from storage and the external provider.
type Catalog struct {
	store    Store
	provider placeapi.Client
	rand     Rand
}

// Option customises a Catalog.
type Option func(*Catalog)

// WithRand replaces DefaultRand.
func WithRand(r Rand) Option {
	return func(c *Catalog) {
		c.rand = r
	}
}

// New creates a Catalog. provider may be nil, in which case only storage is used.
func New(store Store, provider placeapi.Client, opts ...Option) *Catalog {
	c := &Catalog{store: store, provider: provider, rand: DefaultRand}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rand exposes the catalog's random source so callers share it.
func (c *Catalog) Rand() Rand {
	return c.rand
}

// HasPreference reports whether pref is among prefs.
func HasPreference(prefs []string, pref string) bool {
	return slices.Contains(prefs, pref)
}

// Collect gathers places whose address contains location. Restaurants are
// included only for the "food" preference and pet-friendly spots only for
// "pet". When fewer than ten places are found the provider fills in.
func (c *Catalog) Collect(ctx context.Context, location string, prefs []string) ([]Place, error) {
	var places []Place

	attractions, err := c.store.SearchAttractions(ctx, models.CatalogQuery{Address: location, Limit: attractionCap})
	if err != nil {
		return nil, fmt.Errorf("collect attractions: %w", err)
	}
	for _, a := range attractions {
		places = append(places, fromAttraction(a, attractionRating))
	}

	if HasPreference(prefs, "food") {
		foods, err := c.store.SearchFoods(ctx, models.CatalogQuery{Address: location, Limit: foodCap})
		if err != nil {
			return nil, fmt.Errorf("collect foods: %w", err)
		}
		for _, f := range foods {
			places = append(places, fromFood(f, foodRating))
		}
	}

	if HasPreference(prefs, "pet") {
		spots, err := c.store.SearchPetTourSpots(ctx, models.CatalogQuery{Address: location, Limit: petCap})
		if err != nil {
			return nil, fmt.Errorf("collect pet tour spots: %w", err)
		}
		for _, s := range spots {
			places = append(places, fromPetTourSpot(s, petRating))
		}
	}

	if len(places) < providerFloor {
		places = append(places, c.fromProvider(ctx, phraseQueries(location, nil, 0))...)
	}
	return places, nil
}

// CollectForKeyword gathers places whose title or address contains keyword,
// with placeholder ratings. An empty keyword matches everything.
func (c *Catalog) CollectForKeyword(ctx context.Context, keyword string) ([]Place, error) {
	var places []Place

	attractions, err := c.store.SearchAttractions(ctx, models.CatalogQuery{Keyword: keyword, Limit: attractionCap})
	if err != nil {
		return nil, fmt.Errorf("search attractions: %w", err)
	}
	for _, a := range attractions {
		places = append(places, fromAttraction(a, KeywordRating(c.rand)))
	}

	foods, err := c.store.SearchFoods(ctx, models.CatalogQuery{Keyword: keyword, Limit: foodCap})
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	for _, f := range foods {
		places = append(places, fromFood(f, KeywordRating(c.rand)))
	}

	spots, err := c.store.SearchPetTourSpots(ctx, models.CatalogQuery{Keyword: keyword, Limit: petCap})
	if err != nil {
		return nil, fmt.Errorf("search pet tour spots: %w", err)
	}
	for _, s := range spots {
		places = append(places, fromPetTourSpot(s, KeywordRating(c.rand)))
	}

	if len(places) < providerFloor {
		text := strings.TrimSpace(keyword)
		if text == "" {
			text = fallbackKeyword
		}
		places = append(places, c.fromProvider(ctx, []placeapi.Query{{Text: text, Size: providerSize}})...)
	}
	return places, nil
}

// CollectNearby queries the provider only, around origin when it is set.
func (c *Catalog) CollectNearby(ctx context.Context, location string, origin *geo.Point, radiusMeters int) []Place {
	return c.fromProvider(ctx, phraseQueries(location, origin, radiusMeters))
}

// ProviderSearch runs a single provider query. Failures are logged and
// reported as no results.
func (c *Catalog) ProviderSearch(ctx context.Context, q placeapi.Query) []placeapi.Document {
	if c.provider == nil {
		return nil
	}
	docs, err := c.provider.Search(ctx, q)
	if err != nil {
		logging.WithContext(ctx).Warn().
			Err(err).
			Str("query", q.Text).
			Msg("place provider search failed")
		return nil
	}
	return docs
}

func (c *Catalog) fromProvider(ctx context.Context, queries []placeapi.Query) []Place {
	var places []Place
	seen := make(map[string]struct{})
	for _, q := range queries {
		for _, doc := range c.ProviderSearch(ctx, q) {
			if _, dup := seen[doc.ID]; dup {
				continue
			}
			place, ok := FromDocument(doc, c.rand)
			if !ok {
				continue
			}
			seen[doc.ID] = struct{}{}
			places = append(places, place)
		}
	}
	return places
}

func phraseQueries(location string, origin *geo.Point, radiusMeters int) []placeapi.Query {
	location = strings.TrimSpace(location)
	queries := make([]placeapi.Query, 0, len(providerSuffixes))
	for _, suffix := range providerSuffixes {
		text := suffix
		if location != "" {
			text = location + " " + suffix
		}
		queries = append(queries, placeapi.Query{
			Text:         text,
			Size:         providerSize,
			Origin:       origin,
			RadiusMeters: radiusMeters,
		})
	}
	return queries
}
