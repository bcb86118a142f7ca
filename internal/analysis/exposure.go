// Package analysis implements the route sun exposure model: sampling a
// route into analysis points, the per-side car exposure distribution,
// and the trip-level daylight aggregation.
package analysis

import (
	"math"

	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/spatial"
)

// Canonical facing direction of each car side relative to the
// direction of travel (front = 0, clockwise)
var sideOrientations = map[models.Side]float64{
	models.SideFront: 0,
	models.SideRight: 90,
	models.SideBack:  180,
	models.SideLeft:  270,
}

// CarSideExposures computes the normalized exposure fraction for each
// of the four car sides given the sun position and the car's bearing.
//
// The sun azimuth is expressed in the car's own frame (0 = directly
// ahead), each side receives a cosine falloff of its angular offset
// from the sun with a hard 90° cutoff, and the four raw values are
// normalized to sum to 1. The result is a distribution of illuminated
// surface across the faces, not an absolute irradiance. Elevation acts
// only as a daylight gate: at or below the horizon every side is 0.
func CarSideExposures(sun models.SunPosition, carBearing float64) models.SideExposure {
	var exposure models.SideExposure
	if !sun.IsDaylight() {
		return exposure
	}

	relative := spatial.NormalizeDegrees(sun.AzimuthDegrees - carBearing)

	var raw models.SideExposure
	var total float64
	for _, side := range models.Sides {
		alpha := spatial.AngularSeparationDegrees(relative, sideOrientations[side])
		// cos(90°) is exactly zero in real arithmetic but ~6e-17 in
		// floating point; excluding the boundary keeps sides at a right
		// angle to the sun at exactly zero without a discontinuity.
		if alpha < 90 {
			v := math.Cos(alpha * math.Pi / 180)
			raw.Set(side, v)
			total += v
		}
	}

	// With four orientations 90° apart, at least one side is within
	// 90° of any azimuth, so total > 0 whenever the sun is up.
	if total <= 0 {
		return exposure
	}
	for _, side := range models.Sides {
		exposure.Set(side, raw.Get(side)/total)
	}
	return exposure
}
