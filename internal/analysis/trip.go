package analysis

import (
	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/spatial"
)

// AggregateTrip averages per-side exposure over the daylight points of
// a sampled route. Night points are counted but excluded from the
// averages. With no daylight points the summary is all-zero and
// HasDaylight is false, which callers must not read as "fully shaded".
// Max/min side ties go to the first side in front, back, left, right
// order.
func AggregateTrip(points []models.AnalysisPoint) models.TripSummary {
	var summary models.TripSummary

	var sums models.SideExposure
	var azimuths []float64
	for _, p := range points {
		if !p.Sun.IsDaylight() {
			summary.NightPoints++
			continue
		}
		summary.DaylightPoints++
		for _, side := range models.Sides {
			sums.Set(side, sums.Get(side)+p.Exposure.Get(side))
		}
		azimuths = append(azimuths, p.Sun.AzimuthDegrees)
	}

	if summary.DaylightPoints == 0 {
		return summary
	}
	summary.HasDaylight = true

	n := float64(summary.DaylightPoints)
	for _, side := range models.Sides {
		summary.Exposure.Set(side, sums.Get(side)/n)
	}

	maxSide, minSide := models.Sides[0], models.Sides[0]
	for _, side := range models.Sides[1:] {
		if summary.Exposure.Get(side) > summary.Exposure.Get(maxSide) {
			maxSide = side
		}
		if summary.Exposure.Get(side) < summary.Exposure.Get(minSide) {
			minSide = side
		}
	}
	summary.MaxSide = maxSide
	summary.MinSide = minSide

	summary.MeanSunAzimuth = spatial.CircularMeanDegrees(azimuths, nil)

	return summary
}
