package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/spatial"
)

// MeeusProvider computes sun positions from the apparent equatorial
// coordinates of the Sun (Meeus ephemeris) and Greenwich apparent
// sidereal time. Stateless.
type MeeusProvider struct{}

// NewMeeusProvider creates a Meeus-based provider
func NewMeeusProvider() *MeeusProvider {
	return &MeeusProvider{}
}

// Position returns the solar azimuth and elevation at (lat, lon) for t.
// Longitude is degrees east-positive.
func (p *MeeusProvider) Position(lat, lon float64, t time.Time) models.SunPosition {
	jd := julian.TimeToJD(t.UTC())

	// Apparent RA/Dec of the Sun
	ra, dec := solar.ApparentEquatorial(jd)

	// Local hour angle from Greenwich apparent sidereal time
	gst := sidereal.Apparent(jd)
	lst := gst.Angle().Rad() + lon*math.Pi/180
	H := unit.Angle(lst - ra.Rad())

	phi := unit.AngleFromDeg(lat)

	// Elevation
	sinEl := phi.Sin()*dec.Sin() + phi.Cos()*dec.Cos()*H.Cos()
	elevation := math.Asin(sinEl) * 180 / math.Pi

	// Hour-angle azimuth is referenced to south, westward positive
	// (Meeus convention); shift to north-clockwise.
	azSouth := math.Atan2(H.Sin(), H.Cos()*phi.Sin()-dec.Tan()*phi.Cos())
	azimuth := spatial.NormalizeDegrees(azSouth*180/math.Pi + 180)

	return models.SunPosition{
		AzimuthDegrees:   azimuth,
		ElevationDegrees: elevation,
	}
}
