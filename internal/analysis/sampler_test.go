package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/solar"
)

// fixedSun always reports the same position
func fixedSun(azimuth, elevation float64) solar.Provider {
	return solar.ProviderFunc(func(lat, lon float64, t time.Time) models.SunPosition {
		return models.SunPosition{AzimuthDegrees: azimuth, ElevationDegrees: elevation}
	})
}

func northboundRoute() models.Route {
	return models.Route{
		Path: []models.GeoPoint{
			{Lat: 40.0, Lon: -74.0},
			{Lat: 41.0, Lon: -74.0},
		},
		DistanceMeters:  111000,
		DurationSeconds: 3600,
	}
}

func mustStart(t *testing.T) time.Time {
	t.Helper()
	start, err := time.Parse(time.RFC3339, "2024-06-21T12:00:00Z")
	require.NoError(t, err)
	return start
}

func TestSampleRouteRejectsShortPath(t *testing.T) {
	route := models.Route{
		Path:            []models.GeoPoint{{Lat: 40, Lon: -74}},
		DurationSeconds: 60,
	}
	_, err := SampleRoute(route, mustStart(t), 4, fixedSun(180, 60))
	assert.Error(t, err)
}

func TestSampleRouteRejectsLowSampleCount(t *testing.T) {
	_, err := SampleRoute(northboundRoute(), mustStart(t), 1, fixedSun(180, 60))
	assert.Error(t, err)

	_, err = SampleRoute(northboundRoute(), mustStart(t), 0, fixedSun(180, 60))
	assert.Error(t, err)
}

func TestSampleRouteRejectsNilProvider(t *testing.T) {
	_, err := SampleRoute(northboundRoute(), mustStart(t), 4, nil)
	assert.Error(t, err)
}

func TestSampleRouteTwoPointsAreEndpoints(t *testing.T) {
	route := northboundRoute()
	start := mustStart(t)

	points, err := SampleRoute(route, start, 2, fixedSun(180, 60))
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, route.Path[0], points[0].Location)
	assert.Equal(t, route.Path[1], points[1].Location)

	assert.Equal(t, 0.0, points[0].Progress)
	assert.Equal(t, 1.0, points[1].Progress)

	assert.Equal(t, start, points[0].Time)
	assert.Equal(t, start.Add(time.Hour), points[1].Time)
}

func TestSampleRouteEvenProgress(t *testing.T) {
	route := models.Route{
		Path: []models.GeoPoint{
			{Lat: 40.0, Lon: -74.0},
			{Lat: 40.5, Lon: -74.0},
			{Lat: 41.0, Lon: -74.0},
			{Lat: 41.5, Lon: -74.0},
		},
		DurationSeconds: 900,
	}

	points, err := SampleRoute(route, mustStart(t), 7, fixedSun(90, 45))
	require.NoError(t, err)
	require.Len(t, points, 7)

	for i, p := range points {
		assert.InDelta(t, float64(i)/6.0, p.Progress, 1e-12)
	}
}

func TestSampleRouteBearingUsesTrailingSegmentAtEnd(t *testing.T) {
	// An L-shaped path: north then east
	route := models.Route{
		Path: []models.GeoPoint{
			{Lat: 40.0, Lon: -74.0},
			{Lat: 41.0, Lon: -74.0},
			{Lat: 41.0, Lon: -73.0},
		},
		DurationSeconds: 7200,
	}

	points, err := SampleRoute(route, mustStart(t), 3, fixedSun(180, 60))
	require.NoError(t, err)
	require.Len(t, points, 3)

	// First point heads north, the last reuses the final eastbound segment
	assert.InDelta(t, 0.0, points[0].CarBearing, 1.0)
	eastish := points[2].CarBearing
	assert.InDelta(t, 90.0, eastish, 2.0)
}

func TestSampleRouteEndToEndScenario(t *testing.T) {
	// Northbound route with the sun due south and high: all exposure
	// lands on the back of the car
	points, err := SampleRoute(northboundRoute(), mustStart(t), 2, fixedSun(180, 60))
	require.NoError(t, err)
	require.Len(t, points, 2)

	for _, p := range points {
		assert.InDelta(t, 0.0, p.CarBearing, 1.0)
		assert.InDelta(t, 1.0, p.Exposure.Back, 1e-9)
		assert.Zero(t, p.Exposure.Front)
		assert.Zero(t, p.Exposure.Left)
		assert.Zero(t, p.Exposure.Right)
	}
}

func TestSampleRouteNightPointsHaveZeroExposure(t *testing.T) {
	points, err := SampleRoute(northboundRoute(), mustStart(t), 5, fixedSun(180, -10))
	require.NoError(t, err)

	for _, p := range points {
		assert.Zero(t, p.Exposure.Total())
	}
}
