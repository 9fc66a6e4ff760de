package systems

import "gonum.org/v1/gonum/spatial/r2"

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampInt clamps an integer between min and max.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// axisToward returns -1 when from is past to on an axis, +1 otherwise.
func axisToward(from, to float64) float64 {
	if from > to {
		return -1
	}
	return 1
}

// distanceSq returns the squared distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}
