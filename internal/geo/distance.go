package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine estimate.
	EarthRadiusKm = 6371.0
	// SpeedKmPerMinute is the assumed constant travel speed (60 km/h).
	SpeedKmPerMinute = 1.0
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Estimate is the result of a distance/time calculation between two points.
type Estimate struct {
	DistanceKm float64 `json:"distance"`
	Minutes    int     `json:"time"`
}

// HaversineKm returns the great-circle distance between two points in kilometres.
func HaversineKm(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceAndTime estimates the distance and travel time between origin and destination.
// There is no road routing: the time assumes a straight line at a fixed speed.
func DistanceAndTime(origin, destination Point) Estimate {
	km := HaversineKm(origin, destination)
	return Estimate{
		DistanceKm: math.Round(km*100) / 100,
		Minutes:    int(math.Round(km / SpeedKmPerMinute)),
	}
}
