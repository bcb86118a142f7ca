package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sunside/sunside-backend-go/internal/analysis"
	"github.com/sunside/sunside-backend-go/internal/metrics"
	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/repository"
	"github.com/sunside/sunside-backend-go/internal/routing"
	"github.com/sunside/sunside-backend-go/internal/solar"
	"github.com/sunside/sunside-backend-go/internal/spatial"
)

// ErrValidation marks caller mistakes (bad route shape, bad sample
// count); handlers map it to 400
var ErrValidation = errors.New("invalid analysis input")

// AnalyzeRequest describes one trip to analyze. Either Path (with
// DurationSeconds) or Origin+Destination (resolved through the routing
// collaborator) must be provided.
type AnalyzeRequest struct {
	Path            []models.GeoPoint
	DurationSeconds float64
	DistanceMeters  float64

	Origin      *models.GeoPoint
	Destination *models.GeoPoint

	StartTime   time.Time // UTC
	SampleCount int       // 0 means the configured default
}

// AnalyzeResult is the computed analysis plus its storage ID when
// persisted
type AnalyzeResult struct {
	ID      int64                  `json:"id,omitempty"`
	Route   models.Route           `json:"route"`
	Points  []models.AnalysisPoint `json:"points"`
	Summary models.TripSummary     `json:"summary"`
}

// AnalysisService computes and stores route sun exposure analyses
type AnalysisService struct {
	repo               *repository.AnalysisRepository
	provider           solar.Provider
	router             *routing.Client
	collector          *metrics.Collector
	defaultSampleCount int
}

// NewAnalysisService creates the analysis service. router may be nil
// when no OSRM server is configured; requests must then carry a path.
func NewAnalysisService(
	repo *repository.AnalysisRepository,
	provider solar.Provider,
	router *routing.Client,
	collector *metrics.Collector,
	defaultSampleCount int,
) *AnalysisService {
	if defaultSampleCount < analysis.MinSampleCount {
		defaultSampleCount = analysis.DefaultSampleCount
	}
	return &AnalysisService{
		repo:               repo,
		provider:           provider,
		router:             router,
		collector:          collector,
		defaultSampleCount: defaultSampleCount,
	}
}

// Analyze computes the exposure analysis for the request and, when
// store is true, persists the trip summary
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest, store bool) (*AnalyzeResult, error) {
	started := time.Now()

	route, err := s.resolveRoute(ctx, req)
	if err != nil {
		return nil, err
	}

	sampleCount := req.SampleCount
	if sampleCount == 0 {
		sampleCount = s.defaultSampleCount
	}
	if sampleCount < analysis.MinSampleCount || sampleCount > analysis.MaxSampleCount {
		return nil, fmt.Errorf("%w: sample count must be between %d and %d, got %d",
			ErrValidation, analysis.MinSampleCount, analysis.MaxSampleCount, sampleCount)
	}

	points, err := analysis.SampleRoute(route, req.StartTime, sampleCount, s.provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	summary := analysis.AggregateTrip(points)

	result := &AnalyzeResult{
		Route:   route,
		Points:  points,
		Summary: summary,
	}

	if store {
		id, err := s.store(route, req.StartTime, sampleCount, summary)
		if err != nil {
			return nil, err
		}
		result.ID = id
	}

	if s.collector != nil {
		s.collector.ObserveAnalysis(time.Since(started), summary)
	}
	return result, nil
}

// resolveRoute returns the request's own route or fetches one from the
// routing collaborator
func (s *AnalysisService) resolveRoute(ctx context.Context, req AnalyzeRequest) (models.Route, error) {
	if len(req.Path) > 0 {
		route := models.Route{
			Path:            req.Path,
			DistanceMeters:  req.DistanceMeters,
			DurationSeconds: req.DurationSeconds,
		}
		if route.DistanceMeters == 0 {
			route.DistanceMeters = pathDistance(route.Path)
		}
		if err := route.Validate(); err != nil {
			return models.Route{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return route, nil
	}

	if req.Origin == nil || req.Destination == nil {
		return models.Route{}, fmt.Errorf("%w: either a path or origin and destination are required", ErrValidation)
	}
	if s.router == nil {
		return models.Route{}, errors.New("no routing server configured; provide a route path")
	}

	route, err := s.router.Route(ctx, *req.Origin, *req.Destination)
	if err != nil {
		if s.collector != nil {
			s.collector.RoutingErrors.Inc()
		}
		return models.Route{}, fmt.Errorf("failed to fetch route: %w", err)
	}
	if s.collector != nil {
		s.collector.RoutingFetches.Inc()
	}
	return route, nil
}

func (s *AnalysisService) store(route models.Route, start time.Time, sampleCount int, summary models.TripSummary) (int64, error) {
	pathJSON, err := json.Marshal(route.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to encode route path: %w", err)
	}

	record := &models.Analysis{
		StartTime:       start.UTC(),
		SampleCount:     sampleCount,
		PathJSON:        string(pathJSON),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		FrontExposure:   summary.Exposure.Front,
		BackExposure:    summary.Exposure.Back,
		LeftExposure:    summary.Exposure.Left,
		RightExposure:   summary.Exposure.Right,
		HasDaylight:     summary.HasDaylight,
		DaylightPoints:  summary.DaylightPoints,
		NightPoints:     summary.NightPoints,
		MaxSide:         string(summary.MaxSide),
		MinSide:         string(summary.MinSide),
	}
	return s.repo.Insert(record)
}

// List retrieves stored analyses with filtering and pagination
func (s *AnalysisService) List(filter models.AnalysisFilter) ([]models.Analysis, int64, error) {
	return s.repo.List(filter)
}

// GetByID retrieves a single stored analysis, or nil when not found
func (s *AnalysisService) GetByID(id int64) (*models.Analysis, error) {
	return s.repo.GetByID(id)
}

// Delete removes a stored analysis; reports whether it existed
func (s *AnalysisService) Delete(id int64) (bool, error) {
	return s.repo.Delete(id)
}

// SunPosition exposes the provider for the raw lookup endpoint
func (s *AnalysisService) SunPosition(lat, lon float64, t time.Time) models.SunPosition {
	return s.provider.Position(lat, lon, t)
}

// pathDistance sums segment haversine distances along a path
func pathDistance(path []models.GeoPoint) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += spatial.HaversineDistance(path[i-1].Lat, path[i-1].Lon, path[i].Lat, path[i].Lon)
	}
	return total
}
