package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(0))
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 359.0, NormalizeDegrees(-1))
	assert.Equal(t, 10.0, NormalizeDegrees(730))
	assert.Equal(t, 180.0, NormalizeDegrees(-180))
}

func TestAngularSeparationDegrees(t *testing.T) {
	assert.Equal(t, 0.0, AngularSeparationDegrees(45, 45))
	assert.Equal(t, 90.0, AngularSeparationDegrees(0, 90))
	assert.Equal(t, 180.0, AngularSeparationDegrees(0, 180))

	// Wraparound at 0/360 is symmetric
	assert.InDelta(t, 2.0, AngularSeparationDegrees(359, 1), 1e-12)
	assert.InDelta(t, 2.0, AngularSeparationDegrees(1, 359), 1e-12)

	// Never exceeds 180
	assert.Equal(t, 90.0, AngularSeparationDegrees(0, 270))
}

func TestCircularMeanDegrees(t *testing.T) {
	// Mean across the wraparound is 0, not 180
	mean := CircularMeanDegrees([]float64{350, 10}, nil)
	ok := mean < 1e-9 || mean > 360-1e-9
	assert.True(t, ok, "expected mean near 0, got %f", mean)

	assert.InDelta(t, 90.0, CircularMeanDegrees([]float64{80, 100}, nil), 1e-9)

	// Weighted mean leans toward the heavier angle
	weighted := CircularMeanDegrees([]float64{0, 90}, []float64{3, 1})
	assert.Less(t, weighted, 45.0)
	assert.Greater(t, weighted, 0.0)
}
