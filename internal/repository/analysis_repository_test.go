package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunside/sunside-backend-go/internal/database"
	"github.com/sunside/sunside-backend-go/internal/models"
)

func newTestRepo(t *testing.T) *AnalysisRepository {
	t.Helper()
	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAnalysisRepository(db)
}

func sampleAnalysis(start time.Time) *models.Analysis {
	return &models.Analysis{
		StartTime:       start,
		SampleCount:     12,
		PathJSON:        `[{"lat":40,"lon":-74},{"lat":41,"lon":-74}]`,
		DistanceMeters:  111000,
		DurationSeconds: 3600,
		FrontExposure:   0.1,
		BackExposure:    0.6,
		LeftExposure:    0.2,
		RightExposure:   0.1,
		HasDaylight:     true,
		DaylightPoints:  10,
		NightPoints:     2,
		MaxSide:         "back",
		MinSide:         "front",
	}
}

func TestInsertAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	start := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

	id, err := repo.Insert(sampleAnalysis(start))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, 12, got.SampleCount)
	assert.InDelta(t, 0.6, got.BackExposure, 1e-12)
	assert.True(t, got.HasDaylight)
	assert.Equal(t, "back", got.MaxSide)
	assert.True(t, start.Equal(got.StartTime), "want %v, got %v", start, got.StartTime)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByID(12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListWithFilters(t *testing.T) {
	repo := newTestRepo(t)

	early := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 7, 10, 8, 0, 0, 0, time.UTC)

	a1 := sampleAnalysis(early)
	a1.MaxSide = "left"
	_, err := repo.Insert(a1)
	require.NoError(t, err)

	a2 := sampleAnalysis(late)
	_, err = repo.Insert(a2)
	require.NoError(t, err)

	// No filter returns both
	all, total, err := repo.List(models.AnalysisFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	// Time filter
	recent, total, err := repo.List(models.AnalysisFilter{
		StartAfter: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recent, 1)
	assert.True(t, late.Equal(recent[0].StartTime))

	// Side filter
	lefts, total, err := repo.List(models.AnalysisFilter{MaxSide: "left"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, lefts, 1)
	assert.Equal(t, "left", lefts[0].MaxSide)
}

func TestListPagination(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Insert(sampleAnalysis(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, err)
	}

	page, total, err := repo.List(models.AnalysisFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}

func TestListReturnsAllRows(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		_, err := repo.Insert(sampleAnalysis(base.Add(time.Duration(i) * time.Minute)))
		require.NoError(t, err)
	}

	// A full scan completes without truncation: every stored row comes
	// back and the count matches the reported total
	all, total, err := repo.List(models.AnalysisFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
	assert.Len(t, all, 50)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.Insert(sampleAnalysis(time.Now().UTC()))
	require.NoError(t, err)

	deleted, err := repo.Delete(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again reports no row
	deleted, err = repo.Delete(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
