package models

import "fmt"

// GeoPoint is a WGS84 coordinate in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Route is an ordered path with its total distance and duration,
// produced by an external routing collaborator
type Route struct {
	Path            []GeoPoint `json:"path"`
	DistanceMeters  float64    `json:"distance_meters"`
	DurationSeconds float64    `json:"duration_seconds"`
}

// Validate checks the route shape invariants
func (r Route) Validate() error {
	if len(r.Path) < 2 {
		return fmt.Errorf("route path must have at least 2 points, got %d", len(r.Path))
	}
	if r.DurationSeconds < 0 {
		return fmt.Errorf("route duration must be non-negative, got %f", r.DurationSeconds)
	}
	return nil
}
