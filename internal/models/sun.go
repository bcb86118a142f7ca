package models

// SunPosition holds the solar azimuth and elevation at a point in time.
// Azimuth is degrees clockwise from true north in [0,360); elevation is
// degrees above the horizon in [-90,90]. Elevation > 0 means daylight.
type SunPosition struct {
	AzimuthDegrees   float64 `json:"azimuth_degrees"`
	ElevationDegrees float64 `json:"elevation_degrees"`
}

// IsDaylight reports whether the sun is above the horizon
func (s SunPosition) IsDaylight() bool {
	return s.ElevationDegrees > 0
}
