package spatial

import "math"

// NormalizeDegrees wraps an angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// AngularSeparationDegrees returns the shortest angular distance between
// two directions on the circle, always in [0, 180]
func AngularSeparationDegrees(a, b float64) float64 {
	diff := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// CircularMean calculates the mean of circular data (angles in radians)
// weights: optional weights for each angle (can be nil for equal weights)
// Returns mean angle in radians
func CircularMean(angles []float64, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	var sumSin, sumCos float64
	if weights == nil {
		// Equal weights
		for _, angle := range angles {
			sumSin += math.Sin(angle)
			sumCos += math.Cos(angle)
		}
	} else {
		// Weighted
		for i, angle := range angles {
			w := 1.0
			if i < len(weights) {
				w = weights[i]
			}
			sumSin += w * math.Sin(angle)
			sumCos += w * math.Cos(angle)
		}
	}

	return math.Atan2(sumSin, sumCos)
}

// CircularMeanDegrees calculates the mean of circular data in degrees
func CircularMeanDegrees(angles []float64, weights []float64) float64 {
	radians := make([]float64, len(angles))
	for i, angle := range angles {
		radians[i] = angle * math.Pi / 180
	}
	meanRad := CircularMean(radians, weights)
	meanDeg := meanRad * 180 / math.Pi
	if meanDeg < 0 {
		meanDeg += 360
	}
	return meanDeg
}
