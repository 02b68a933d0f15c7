package search

import (
	"context"
	"slices"
	"strings"

	"daytrip/internal/catalog"
)

// User types that reorder results.
const (
	UserAlone   = "alone"
	UserCouple  = "couple"
	UserFamily  = "family"
	UserFriends = "friends"
)

// Sort keys. Review counts are placeholders, so review_count ranks by rating.
const (
	SortPopularity  = "popularity"
	SortRating      = "rating"
	SortReviewCount = "review_count"
	SortDistance    = "distance"
)

// Extra labels added next to a place's own category.
const (
	labelNature = "nature"
	labelFood   = "food"
)

// Catalog is the subset of catalog.Catalog the search service needs.
type Catalog interface {
	CollectForKeyword(ctx context.Context, keyword string) ([]catalog.Place, error)
	Rand() catalog.Rand
}

// Options narrows and orders a database search. KidsZone, NoKidsZone and
// MaxTravelMinutes are accepted but do not filter.
type Options struct {
	Keyword          string
	UserType         string
	DriveCourse      bool
	KidsZone         bool
	NoKidsZone       bool
	PetZone          bool
	MaxTravelMinutes int
	Categories       []string
	SortBy           string
	Page             int
	PageSize         int
}

// Place is a search result.
type Place struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"imageUrl"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Address       string   `json:"address"`
	Categories    []string `json:"categories"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	IsDriveCourse bool     `json:"is_drive_course"`
	IsKidsZone    bool     `json:"is_kids_zone"`
	IsNoKidsZone  bool     `json:"is_no_kids_zone"`
	IsPetZone     bool     `json:"is_pet_zone"`
	TravelTime    int      `json:"travel_time"`
}

// Page is one page of results.
type Page struct {
	Results  []Place `json:"results"`
	Count    int     `json:"count"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	HasMore  bool    `json:"hasMore"`
}

// Service exposes the database-backed place search.
type Service interface {
	Search(ctx context.Context, opts Options) (Page, error)
}

type service struct {
	catalog Catalog
}

// New wires a Service backed by the provided Catalog.
func New(c Catalog) Service {
	return &service{catalog: c}
}

func (s *service) Search(ctx context.Context, opts Options) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	places, err := s.catalog.CollectForKeyword(ctx, strings.TrimSpace(opts.Keyword))
	if err != nil {
		return Page{}, err
	}

	if opts.PetZone {
		places = promote(places, func(p catalog.Place) bool { return p.Source == catalog.SourcePet })
	}
	if opts.DriveCourse {
		places = promote(places, func(p catalog.Place) bool { return p.Source == catalog.SourceAttraction })
	}
	places = filterCategories(places, opts.Categories)

	switch opts.SortBy {
	case SortRating, SortReviewCount:
		slices.SortStableFunc(places, func(a, b catalog.Place) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		})
	}

	r := s.catalog.Rand()
	results := make([]Place, 0, len(places))
	for _, p := range places {
		results = append(results, toResult(p, r))
	}
	rankForUser(results, opts.UserType)

	return paginate(results, opts.Page, opts.PageSize), nil
}

// promote moves places matching first to the front, keeping relative order.
func promote(places []catalog.Place, first func(catalog.Place) bool) []catalog.Place {
	out := make([]catalog.Place, 0, len(places))
	var rest []catalog.Place
	for _, p := range places {
		if first(p) {
			out = append(out, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(out, rest...)
}

// filterCategories keeps places whose category name or Korean label contains
// any of wanted, case-insensitively. When nothing matches the input is
// returned unchanged.
func filterCategories(places []catalog.Place, wanted []string) []catalog.Place {
	var needles []string
	for _, w := range wanted {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			needles = append(needles, w)
		}
	}
	if len(needles) == 0 {
		return places
	}

	var matched []catalog.Place
	for _, p := range places {
		for _, n := range needles {
			if p.Category.Matches(n) {
				matched = append(matched, p)
				break
			}
		}
	}
	if len(matched) == 0 {
		return places
	}
	return matched
}

func toResult(p catalog.Place, r catalog.Rand) Place {
	categories := []string{string(p.Category)}
	switch p.Category {
	case catalog.CategoryAttraction:
		categories = append(categories, labelNature)
	case catalog.CategoryRestaurant:
		categories = append(categories, labelFood)
	}

	return Place{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		Latitude:      p.Lat,
		Longitude:     p.Lon,
		Address:       p.Address,
		Categories:    categories,
		Rating:        p.Rating,
		ReviewCount:   catalog.IntBetween(r, 10, 200),
		IsDriveCourse: p.Source == catalog.SourceAttraction,
		IsKidsZone:    p.Source != catalog.SourcePet && p.Source != catalog.SourceFood,
		IsNoKidsZone:  p.Source == catalog.SourceFood,
		IsPetZone:     p.Source == catalog.SourcePet,
		TravelTime:    catalog.IntBetween(r, 10, 60),
	}
}

func hasCategory(p Place, c catalog.Category) bool {
	return slices.Contains(p.Categories, string(c))
}

// rankForUser stable-sorts results so the kinds of place suited to userType
// come first.
func rankForUser(results []Place, userType string) {
	var preferred func(Place) bool
	switch userType {
	case UserAlone:
		preferred = func(p Place) bool { return p.IsPetZone || hasCategory(p, catalog.CategoryCafe) }
	case UserCouple:
		preferred = func(p Place) bool { return p.IsNoKidsZone || hasCategory(p, catalog.CategoryCafe) }
	case UserFamily:
		preferred = func(p Place) bool { return p.IsDriveCourse && p.IsKidsZone }
	case UserFriends:
		preferred = func(p Place) bool { return p.IsNoKidsZone || hasCategory(p, catalog.CategoryAttraction) }
	default:
		return
	}

	slices.SortStableFunc(results, func(a, b Place) int {
		pa, pb := preferred(a), preferred(b)
		switch {
		case pa && !pb:
			return -1
		case !pa && pb:
			return 1
		}
		return 0
	})
}

// paginate slices results. A non-positive size returns everything as page 1.
func paginate(results []Place, page, size int) Page {
	total := len(results)
	if size <= 0 {
		return Page{Results: results, Count: total, Page: 1, PageSize: total}
	}
	if page < 1 {
		page = 1
	}

	start := total
	if page-1 <= total/size {
		start = min((page-1)*size, total)
	}
	end := total
	if size < total-start {
		end = start + size
	}
	return Page{
		Results:  results[start:end],
		Count:    total,
		Page:     page,
		PageSize: size,
		HasMore:  end < total,
	}
}
