package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/solar"
	"github.com/sunside/sunside-backend-go/internal/spatial"
)

// Sample count bounds exposed to callers that clamp user input
const (
	MinSampleCount     = 2
	DefaultSampleCount = 12
	MaxSampleCount     = 100
)

// SampleRoute produces sampleCount analysis points evenly spaced by
// progress fraction along the route, with the sun position and side
// exposures evaluated at each point.
//
// Elapsed time at a point is progress × duration, i.e. constant
// average speed over path-index progress. Car bearing at a point is
// the bearing of the segment leaving it, or the trailing segment at
// the route's end. Invalid shapes are rejected, never clamped.
func SampleRoute(route models.Route, start time.Time, sampleCount int, provider solar.Provider) ([]models.AnalysisPoint, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}
	if sampleCount < MinSampleCount {
		return nil, fmt.Errorf("sample count must be at least %d, got %d", MinSampleCount, sampleCount)
	}
	if provider == nil {
		return nil, fmt.Errorf("sun position provider is required")
	}

	start = start.UTC()
	lastIndex := len(route.Path) - 1

	points := make([]models.AnalysisPoint, 0, sampleCount)
	for i := 0; i < sampleCount; i++ {
		progress := float64(i) / float64(sampleCount-1)

		pathIndex := int(math.Floor(progress * float64(lastIndex)))
		if pathIndex > lastIndex {
			pathIndex = lastIndex
		}
		location := route.Path[pathIndex]

		var bearing float64
		if pathIndex < lastIndex {
			next := route.Path[pathIndex+1]
			bearing = spatial.Bearing(location.Lat, location.Lon, next.Lat, next.Lon)
		} else {
			prev := route.Path[pathIndex-1]
			bearing = spatial.Bearing(prev.Lat, prev.Lon, location.Lat, location.Lon)
		}

		elapsed := time.Duration(progress * route.DurationSeconds * float64(time.Second))
		at := start.Add(elapsed)

		sun := provider.Position(location.Lat, location.Lon, at)

		points = append(points, models.AnalysisPoint{
			Location:   location,
			Time:       at,
			Progress:   progress,
			CarBearing: bearing,
			Sun:        sun,
			Exposure:   CarSideExposures(sun, bearing),
		})
	}

	return points, nil
}
