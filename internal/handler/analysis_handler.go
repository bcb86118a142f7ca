package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/service"
	"github.com/sunside/sunside-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for trip exposure analyses
type AnalysisHandler struct {
	service *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// analyzeRequest is the JSON body of POST /analyses. Times are RFC3339
// and interpreted as UTC.
type analyzeRequest struct {
	Path            []models.GeoPoint `json:"path"`
	DurationSeconds float64           `json:"duration_seconds"`
	DistanceMeters  float64           `json:"distance_meters"`
	Origin          *models.GeoPoint  `json:"origin"`
	Destination     *models.GeoPoint  `json:"destination"`
	StartTime       time.Time         `json:"start_time" binding:"required"`
	SampleCount     int               `json:"sample_count"`
}

func (r analyzeRequest) toService() service.AnalyzeRequest {
	return service.AnalyzeRequest{
		Path:            r.Path,
		DurationSeconds: r.DurationSeconds,
		DistanceMeters:  r.DistanceMeters,
		Origin:          r.Origin,
		Destination:     r.Destination,
		StartTime:       r.StartTime.UTC(),
		SampleCount:     r.SampleCount,
	}
}

// Create handles POST /api/v1/analyses
func (h *AnalysisHandler) Create(c *gin.Context) {
	h.analyze(c, true)
}

// Preview handles POST /api/v1/analyses/preview
func (h *AnalysisHandler) Preview(c *gin.Context) {
	h.analyze(c, false)
}

func (h *AnalysisHandler) analyze(c *gin.Context, store bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), req.toService(), store)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, "Invalid analysis input", err)
			return
		}
		response.InternalError(c, "Failed to analyze route", err)
		return
	}

	response.Success(c, result)
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	var filter models.AnalysisFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	analyses, total, err := h.service.List(filter)
	if err != nil {
		response.InternalError(c, "Failed to list analyses", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       analyses,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}

// GetByID handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid analysis ID", err)
		return
	}

	analysis, err := h.service.GetByID(id)
	if err != nil {
		response.InternalError(c, "Failed to get analysis", err)
		return
	}
	if analysis == nil {
		response.NotFound(c, "Analysis not found")
		return
	}

	response.Success(c, gin.H{
		"analysis": analysis,
		"summary":  analysis.Summary(),
	})
}

// Delete handles DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid analysis ID", err)
		return
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		response.InternalError(c, "Failed to delete analysis", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Analysis not found")
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// SunPosition handles GET /api/v1/sun/position
func (h *AnalysisHandler) SunPosition(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat", err)
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lon", err)
		return
	}

	at := time.Now().UTC()
	if raw := c.Query("time"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "Invalid time, expected RFC3339", err)
			return
		}
		at = at.UTC()
	}

	sun := h.service.SunPosition(lat, lon, at)
	response.Success(c, gin.H{
		"lat":  lat,
		"lon":  lon,
		"time": at,
		"sun":  sun,
	})
}
