package models

import "time"

// Analysis is a stored trip exposure analysis
type Analysis struct {
	ID int64 `json:"id" db:"id"`

	// Input parameters
	StartTime       time.Time `json:"start_time" db:"start_time"` // UTC
	SampleCount     int       `json:"sample_count" db:"sample_count"`
	PathJSON        string    `json:"-" db:"path_json"` // serialized []GeoPoint
	DistanceMeters  float64   `json:"distance_meters" db:"distance_meters"`
	DurationSeconds float64   `json:"duration_seconds" db:"duration_seconds"`

	// Per-side average exposure over daylight points
	FrontExposure float64 `json:"front_exposure" db:"front_exposure"`
	BackExposure  float64 `json:"back_exposure" db:"back_exposure"`
	LeftExposure  float64 `json:"left_exposure" db:"left_exposure"`
	RightExposure float64 `json:"right_exposure" db:"right_exposure"`

	HasDaylight    bool   `json:"has_daylight" db:"has_daylight"`
	DaylightPoints int    `json:"daylight_points" db:"daylight_points"`
	NightPoints    int    `json:"night_points" db:"night_points"`
	MaxSide        string `json:"max_side" db:"max_side"`
	MinSide        string `json:"min_side" db:"min_side"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Summary reconstructs the trip summary stored on the record
func (a *Analysis) Summary() TripSummary {
	return TripSummary{
		Exposure: SideExposure{
			Front: a.FrontExposure,
			Back:  a.BackExposure,
			Left:  a.LeftExposure,
			Right: a.RightExposure,
		},
		HasDaylight:    a.HasDaylight,
		DaylightPoints: a.DaylightPoints,
		NightPoints:    a.NightPoints,
		MaxSide:        Side(a.MaxSide),
		MinSide:        Side(a.MinSide),
	}
}

// AnalysisFilter filters stored analyses
type AnalysisFilter struct {
	StartAfter  int64   `form:"start_after"`  // Unix timestamp
	StartBefore int64   `form:"start_before"` // Unix timestamp
	MaxSide     string  `form:"max_side"`
	MinDistance float64 `form:"min_distance"`
	OnlyDay     bool    `form:"only_day"` // analyses with at least one daylight point
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}
