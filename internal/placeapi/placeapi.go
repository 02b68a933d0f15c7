package placeapi

import (
	"context"
	"strconv"

	"daytrip/internal/geo"
)

// Document is a single place returned by the external place-search provider.
// The provider does not report ratings or reviews.
type Document struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	CategoryName    string `json:"category_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	Phone           string `json:"phone"`
	PlaceURL        string `json:"place_url"`
	X               string `json:"x"` // longitude
	Y               string `json:"y"` // latitude
}

// Coordinates parses the document position. ok is false when either axis is
// missing or unparsable.
func (d Document) Coordinates() (geo.Point, bool) {
	if d.X == "" || d.Y == "" {
		return geo.Point{}, false
	}
	lon, err := strconv.ParseFloat(d.X, 64)
	if err != nil {
		return geo.Point{}, false
	}
	lat, err := strconv.ParseFloat(d.Y, 64)
	if err != nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lon: lon}, true
}

// Query describes a keyword search.
type Query struct {
	Text string
	Page int
	Size int

	// Origin and RadiusMeters restrict results around a point when Origin is set.
	Origin       *geo.Point
	RadiusMeters int
}

// Client searches an external place provider.
type Client interface {
	Search(ctx context.Context, q Query) ([]Document, error)
}
