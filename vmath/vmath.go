package vmath

import (
	"math"
	"math/rand"
)

// --- Random ---

// RandRange returns a uniform value in [min, max) drawn from rng
func RandRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// RandSigned returns a uniform value in [-mag, mag) drawn from rng
func RandSigned(rng *rand.Rand, mag float64) float64 {
	return (rng.Float64() - 0.5) * 2 * mag
}

// --- Scalars ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap moves v to the opposite side once it leaves [-margin, extent+margin]
// Values inside the range are returned unchanged
func Wrap(v, margin, extent float64) float64 {
	if v < -margin {
		return extent + margin
	}
	if v > extent+margin {
		return -margin
	}
	return v
}

// --- Vectors ---

// Magnitude returns the euclidean length of (x, y)
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}
