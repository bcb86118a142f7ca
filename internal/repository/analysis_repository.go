package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sunside/sunside-backend-go/internal/models"
)

// AnalysisRepository handles database operations for stored analyses
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `id, start_time, sample_count, path_json,
	distance_meters, duration_seconds,
	front_exposure, back_exposure, left_exposure, right_exposure,
	has_daylight, daylight_points, night_points, max_side, min_side,
	created_at`

// Insert stores an analysis and returns its assigned ID
func (r *AnalysisRepository) Insert(a *models.Analysis) (int64, error) {
	query := `INSERT INTO analyses (start_time, sample_count, path_json,
		distance_meters, duration_seconds,
		front_exposure, back_exposure, left_exposure, right_exposure,
		has_daylight, daylight_points, night_points, max_side, min_side)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		a.StartTime.UTC().Unix(), a.SampleCount, a.PathJSON,
		a.DistanceMeters, a.DurationSeconds,
		a.FrontExposure, a.BackExposure, a.LeftExposure, a.RightExposure,
		a.HasDaylight, a.DaylightPoints, a.NightPoints, a.MaxSide, a.MinSide,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get analysis ID: %w", err)
	}
	return id, nil
}

// List retrieves analyses with filtering and pagination
func (r *AnalysisRepository) List(filter models.AnalysisFilter) ([]models.Analysis, int64, error) {
	query := "SELECT " + analysisColumns + " FROM analyses"

	var conditions []string
	var args []interface{}

	// Add filters
	if filter.StartAfter > 0 {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filter.StartAfter)
	}
	if filter.StartBefore > 0 {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, filter.StartBefore)
	}
	if filter.MaxSide != "" {
		conditions = append(conditions, "max_side = ?")
		args = append(args, filter.MaxSide)
	}
	if filter.MinDistance > 0 {
		conditions = append(conditions, "distance_meters >= ?")
		args = append(args, filter.MinDistance)
	}
	if filter.OnlyDay {
		conditions = append(conditions, "has_daylight = 1")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Get total count
	countQuery := "SELECT COUNT(*) FROM analyses"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	// Add pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY start_time DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return analyses, total, nil
}

// GetByID retrieves a single analysis, or nil when not found
func (r *AnalysisRepository) GetByID(id int64) (*models.Analysis, error) {
	query := "SELECT " + analysisColumns + " FROM analyses WHERE id = ?"

	row := r.db.QueryRow(query, id)
	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an analysis; reports whether a row existed
func (r *AnalysisRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}
	return affected > 0, nil
}

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(s scanner) (*models.Analysis, error) {
	var a models.Analysis
	var startUnix int64
	err := s.Scan(
		&a.ID, &startUnix, &a.SampleCount, &a.PathJSON,
		&a.DistanceMeters, &a.DurationSeconds,
		&a.FrontExposure, &a.BackExposure, &a.LeftExposure, &a.RightExposure,
		&a.HasDaylight, &a.DaylightPoints, &a.NightPoints, &a.MaxSide, &a.MinSide,
		&a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}
	a.StartTime = time.Unix(startUnix, 0).UTC()
	return &a, nil
}
