// Package routing fetches drivable routes from an OSRM server. It is
// an external collaborator of the exposure core: the core only ever
// sees the resulting Route value.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sunside/sunside-backend-go/internal/models"
)

// Client queries an OSRM routing server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OSRM client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// osrmResponse is the subset of the OSRM route response we consume
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Route fetches the driving route between two points and returns it as
// a Route value (path, distance in meters, duration in seconds)
func (c *Client) Route(ctx context.Context, origin, destination models.GeoPoint) (models.Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		c.baseURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to build OSRM request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Route{}, fmt.Errorf("OSRM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Route{}, fmt.Errorf("OSRM returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to read OSRM response: %w", err)
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.Route{}, fmt.Errorf("failed to decode OSRM response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return models.Route{}, fmt.Errorf("OSRM found no route (code %q)", parsed.Code)
	}

	best := parsed.Routes[0]
	path := make([]models.GeoPoint, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		path = append(path, models.GeoPoint{Lat: pair[1], Lon: pair[0]})
	}

	route := models.Route{
		Path:            path,
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}
	if err := route.Validate(); err != nil {
		return models.Route{}, fmt.Errorf("OSRM returned an unusable route: %w", err)
	}
	return route, nil
}
