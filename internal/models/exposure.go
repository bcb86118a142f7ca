package models

import "time"

// Side identifies one of the four faces of the car
type Side string

// Side constants, in tie-break iteration order
const (
	SideFront Side = "front"
	SideBack  Side = "back"
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Sides lists the four car sides in tie-break order (front, back, left, right)
var Sides = []Side{SideFront, SideBack, SideLeft, SideRight}

// SideExposure maps each car side to a normalized exposure fraction.
// The four fractions sum to 1.0 when any side is lit, and are all zero
// when the sun is below the horizon.
type SideExposure struct {
	Front float64 `json:"front"`
	Back  float64 `json:"back"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Get returns the fraction for a side
func (e SideExposure) Get(side Side) float64 {
	switch side {
	case SideFront:
		return e.Front
	case SideBack:
		return e.Back
	case SideLeft:
		return e.Left
	case SideRight:
		return e.Right
	}
	return 0
}

// Set assigns the fraction for a side
func (e *SideExposure) Set(side Side, value float64) {
	switch side {
	case SideFront:
		e.Front = value
	case SideBack:
		e.Back = value
	case SideLeft:
		e.Left = value
	case SideRight:
		e.Right = value
	}
}

// Total returns the sum of the four fractions
func (e SideExposure) Total() float64 {
	return e.Front + e.Back + e.Left + e.Right
}

// AnalysisPoint is one sampled location/time along a route with the
// sun position and per-side exposure evaluated there
type AnalysisPoint struct {
	Location   GeoPoint     `json:"location"`
	Time       time.Time    `json:"time"`     // UTC
	Progress   float64      `json:"progress"` // fraction of the route, [0,1]
	CarBearing float64      `json:"car_bearing"`
	Sun        SunPosition  `json:"sun"`
	Exposure   SideExposure `json:"exposure"`
}

// TripSummary is the per-side average exposure over the daylight
// points of a route
type TripSummary struct {
	Exposure SideExposure `json:"exposure"`

	// HasDaylight distinguishes "no daylight data" from a trip whose
	// daylight exposure averaged to zero
	HasDaylight    bool `json:"has_daylight"`
	DaylightPoints int  `json:"daylight_points"`
	NightPoints    int  `json:"night_points"`

	MaxSide Side `json:"max_side,omitempty"`
	MinSide Side `json:"min_side,omitempty"`

	// MeanSunAzimuth is the circular mean of the sun azimuth over
	// daylight points, degrees clockwise from north
	MeanSunAzimuth float64 `json:"mean_sun_azimuth,omitempty"`
}
