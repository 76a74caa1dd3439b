package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// NewBoundingRect returns the smallest lat/lng rectangle containing coords.
func NewBoundingRect(coords []Coordinate) s2.Rect {
	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	return rect
}

// AngularDistanceKm. distance between a and b along the sphere computed with s2, in km
func AngularDistanceKm(a, b Coordinate) float64 {
	pa := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	pb := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	var angle s1.Angle = pa.Distance(pb)
	return angle.Radians() * earthRadiusKM
}

// RectContains. true if c lies inside rect
func RectContains(rect s2.Rect, c Coordinate) bool {
	return rect.ContainsLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}
