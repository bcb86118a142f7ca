package solar

import (
	"math"
	"time"

	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/spatial"
)

// ApproxProvider computes sun positions with the NOAA solar-geometry
// approximation (mean solar coordinates, equation of time, hour angle).
// Accuracy is a fraction of a degree, enough for per-side exposure
// work; MeeusProvider is preferred when precision matters. Stateless.
type ApproxProvider struct{}

// NewApproxProvider creates the approximate provider
func NewApproxProvider() *ApproxProvider {
	return &ApproxProvider{}
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Position returns the solar azimuth and elevation at (lat, lon) for t.
// Longitude is degrees east-positive. No atmospheric refraction is
// applied; the elevation is purely geometric.
func (p *ApproxProvider) Position(lat, lon float64, t time.Time) models.SunPosition {
	t = t.UTC()
	T := (julianDay(t) - 2451545.0) / 36525.0 // centuries since J2000

	// Solar coordinates
	L0 := spatial.NormalizeDegrees(280.46646 + T*(36000.76983+T*0.0003032)) // mean longitude
	M := spatial.NormalizeDegrees(357.52911 + T*(35999.05029-T*0.0001537))  // mean anomaly
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)                       // eccentricity
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289 // equation of center
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))          // apparent longitude
	eps := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60       // obliquity
	decl := math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda))) // declination, radians

	// Equation of time, minutes
	y := math.Tan(degToRad(eps) / 2)
	y *= y
	eqTimeMin := 4 * radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M)))

	// Hour angle from true solar time
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
	tst := utcMin + 4*lon + eqTimeMin
	ha := tst/4 - 180
	haRad := degToRad(ha)

	// Zenith and elevation
	latRad := degToRad(lat)
	cosZen := math.Sin(latRad)*math.Sin(decl) + math.Cos(latRad)*math.Cos(decl)*math.Cos(haRad)
	if cosZen > 1 {
		cosZen = 1
	} else if cosZen < -1 {
		cosZen = -1
	}
	zenRad := math.Acos(cosZen)
	elevation := 90 - radToDeg(zenRad)

	// Azimuth, measured clockwise from north. The acos form loses the
	// east/west sign; flip for post-noon hour angles.
	var azimuth float64
	sinZen := math.Sin(zenRad)
	if sinZen != 0 && math.Cos(latRad) != 0 {
		cosAz := (math.Sin(decl) - math.Sin(latRad)*cosZen) / (math.Cos(latRad) * sinZen)
		if cosAz > 1 {
			cosAz = 1
		} else if cosAz < -1 {
			cosAz = -1
		}
		azimuth = radToDeg(math.Acos(cosAz))
		if ha > 0 {
			azimuth = 360 - azimuth
		}
	}

	return models.SunPosition{
		AzimuthDegrees:   spatial.NormalizeDegrees(azimuth),
		ElevationDegrees: elevation,
	}
}

// julianDay converts a UTC time to Julian Day
func julianDay(t time.Time) float64 {
	y, m, d := t.Date()
	yy, mm := y, int(m)
	if mm <= 2 {
		yy--
		mm += 12
	}
	a := yy / 100
	b := 2 - a + a/4
	day := float64(d) +
		float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		float64(t.Second())/86400
	return math.Floor(365.25*float64(yy+4716)) +
		math.Floor(30.6001*float64(mm+1)) +
		day + float64(b) - 1524.5
}
