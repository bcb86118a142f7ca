package solar

import (
	"time"

	"github.com/sunside/sunside-backend-go/internal/models"
)

// Provider supplies the solar azimuth and elevation for a location and
// an absolute instant. Azimuth is degrees clockwise from true north in
// [0,360); elevation is degrees above the horizon in [-90,90].
// Implementations must be safe for concurrent use.
type Provider interface {
	Position(lat, lon float64, t time.Time) models.SunPosition
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(lat, lon float64, t time.Time) models.SunPosition

// Position calls f
func (f ProviderFunc) Position(lat, lon float64, t time.Time) models.SunPosition {
	return f(lat, lon, t)
}
