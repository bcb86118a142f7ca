package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunside/sunside-backend-go/internal/database"
	"github.com/sunside/sunside-backend-go/internal/metrics"
	"github.com/sunside/sunside-backend-go/internal/models"
	"github.com/sunside/sunside-backend-go/internal/repository"
	"github.com/sunside/sunside-backend-go/internal/service"
	"github.com/sunside/sunside-backend-go/internal/solar"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "handler.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	provider := solar.ProviderFunc(func(lat, lon float64, at time.Time) models.SunPosition {
		return models.SunPosition{AzimuthDegrees: 180, ElevationDegrees: 60}
	})

	svc := service.NewAnalysisService(
		repository.NewAnalysisRepository(db),
		provider,
		nil,
		metrics.NewCollector(),
		12,
	)
	h := NewAnalysisHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/analyses", h.Create)
	api.POST("/analyses/preview", h.Preview)
	api.GET("/analyses", h.List)
	api.GET("/analyses/:id", h.GetByID)
	api.DELETE("/analyses/:id", h.Delete)
	api.GET("/sun/position", h.SunPosition)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"path": []map[string]float64{
			{"lat": 40.0, "lon": -74.0},
			{"lat": 41.0, "lon": -74.0},
		},
		"duration_seconds": 3600,
		"start_time":       "2024-06-21T12:00:00Z",
		"sample_count":     2,
	}
}

func TestCreateAnalysis(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyses", validBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code int `json:"code"`
		Data struct {
			ID      int64 `json:"id"`
			Summary struct {
				Exposure    models.SideExposure `json:"exposure"`
				HasDaylight bool                `json:"has_daylight"`
				MaxSide     string              `json:"max_side"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Zero(t, resp.Code)
	assert.Greater(t, resp.Data.ID, int64(0))
	assert.True(t, resp.Data.Summary.HasDaylight)
	assert.InDelta(t, 1.0, resp.Data.Summary.Exposure.Back, 1e-9)
	assert.Equal(t, "back", resp.Data.Summary.MaxSide)
}

func TestCreateAnalysisRejectsShortPath(t *testing.T) {
	r := newTestRouter(t)

	body := validBody()
	body["path"] = []map[string]float64{{"lat": 40.0, "lon": -74.0}}

	w := postJSON(t, r, "/api/v1/analyses", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAnalysisRequiresStartTime(t *testing.T) {
	r := newTestRouter(t)

	body := validBody()
	delete(body, "start_time")

	w := postJSON(t, r, "/api/v1/analyses", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyses/preview", validBody())
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	list := httptest.NewRecorder()
	r.ServeHTTP(list, req)
	require.Equal(t, http.StatusOK, list.Code)

	var resp struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.Total)
}

func TestGetAnalysisNotFound(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnalysis(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyses", validBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/analyses/1", nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	assert.Equal(t, http.StatusOK, del.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/analyses/1", nil)
	del = httptest.NewRecorder()
	r.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNotFound, del.Code)
}

func TestSunPositionEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/sun/position?lat=40&lon=-74&time=2024-06-21T16:00:00Z", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Sun models.SunPosition `json:"sun"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 180.0, resp.Data.Sun.AzimuthDegrees)
	assert.Equal(t, 60.0, resp.Data.Sun.ElevationDegrees)
}

func TestSunPositionRejectsBadParams(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sun/position?lat=abc&lon=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
