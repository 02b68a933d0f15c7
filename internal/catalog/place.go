package catalog

import (
	"fmt"
	"strconv"

	"daytrip/internal/geo"
	"daytrip/internal/models"
	"daytrip/internal/placeapi"
)

// Source identifies where a Place came from. IDs are prefixed by source so
// local rows and provider documents never collide.
type Source string

const (
	SourceAttraction Source = "attraction"
	SourceFood       Source = "food"
	SourcePet        Source = "pet"
	SourceProvider   Source = "kakao"
)

var idPrefixes = map[Source]string{
	SourceAttraction: "attr_",
	SourceFood:       "food_",
	SourcePet:        "pet_",
	SourceProvider:   "kakao_",
}

// Place is a normalized point of interest built for a single request.
type Place struct {
	ID           string
	Name         string
	Description  string
	ImageURL     string
	Address      string
	Contact      string
	OpeningHours string
	Lat          float64
	Lon          float64
	Category     Category
	Rating       float64
	VisitMinutes int
	Source       Source
}

// Point returns the place position.
func (p Place) Point() geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon}
}

// Points returns the positions of places in order.
func Points(places []Place) []geo.Point {
	points := make([]geo.Point, len(places))
	for i, p := range places {
		points[i] = p.Point()
	}
	return points
}

func placeID(source Source, id string) string {
	return idPrefixes[source] + id
}

const (
	defaultOpeningHours    = "09:00 - 18:00"
	restaurantOpeningHours = "11:00 - 21:00"
)

func fromAttraction(a models.Attraction, rating float64) Place {
	return Place{
		ID:           placeID(SourceAttraction, strconv.FormatInt(a.ID, 10)),
		Name:         a.Title,
		Description:  fmt.Sprintf("%s is a tourist attraction located at %s.", a.Title, a.Addr1),
		ImageURL:     a.Image,
		Address:      a.Addr1,
		Contact:      a.Tel,
		OpeningHours: defaultOpeningHours,
		Lat:          a.MapY,
		Lon:          a.MapX,
		Category:     CategoryAttraction,
		Rating:       rating,
		VisitMinutes: CategoryAttraction.VisitMinutes(),
		Source:       SourceAttraction,
	}
}

func fromFood(f models.Food, rating float64) Place {
	return Place{
		ID:           placeID(SourceFood, strconv.FormatInt(f.ID, 10)),
		Name:         f.Title,
		Description:  fmt.Sprintf("%s is a restaurant located at %s.", f.Title, f.Addr1),
		ImageURL:     f.Image,
		Address:      f.Addr1,
		Contact:      f.Tel,
		OpeningHours: restaurantOpeningHours,
		Lat:          f.MapY,
		Lon:          f.MapX,
		Category:     CategoryRestaurant,
		Rating:       rating,
		VisitMinutes: CategoryRestaurant.VisitMinutes(),
		Source:       SourceFood,
	}
}

func fromPetTourSpot(s models.PetTourSpot, rating float64) Place {
	return Place{
		ID:           placeID(SourcePet, strconv.FormatInt(s.ID, 10)),
		Name:         s.Title,
		Description:  fmt.Sprintf("%s is a pet-friendly spot located at %s.", s.Title, s.Addr1),
		ImageURL:     s.FirstImage,
		Address:      s.Addr1,
		Contact:      s.Tel,
		OpeningHours: defaultOpeningHours,
		Lat:          s.MapY,
		Lon:          s.MapX,
		Category:     CategoryPetFriendly,
		Rating:       rating,
		VisitMinutes: CategoryPetFriendly.VisitMinutes(),
		Source:       SourcePet,
	}
}

// FromDocument normalizes a provider document. ok is false when the document
// has no usable coordinates.
func FromDocument(doc placeapi.Document, r Rand) (Place, bool) {
	point, ok := doc.Coordinates()
	if !ok {
		return Place{}, false
	}
	category := Categorize(doc.CategoryName)
	return Place{
		ID:           placeID(SourceProvider, doc.ID),
		Name:         doc.PlaceName,
		Description:  fmt.Sprintf("%s is a %s located at %s.", doc.PlaceName, doc.CategoryName, doc.AddressName),
		Address:      doc.AddressName,
		Contact:      doc.Phone,
		OpeningHours: defaultOpeningHours,
		Lat:          point.Lat,
		Lon:          point.Lon,
		Category:     category,
		Rating:       ProviderRating(r),
		VisitMinutes: category.VisitMinutes(),
		Source:       SourceProvider,
	}, true
}
