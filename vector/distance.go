package vector

import (
	"fmt"
	"math"
)

// Dot returns the dot product of a and b. Callers must ensure equal lengths.
func Dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// Magnitude returns the L2 norm of v.
func Magnitude(v []float64) float64 { return math.Sqrt(Dot(v, v)) }

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error if the vectors have different lengths or are empty. A pair
// where either vector has zero magnitude scores 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	return CosineWithMagnitude(a, Magnitude(a), b, Magnitude(b)), nil
}

// CosineWithMagnitude computes cosine similarity from precomputed magnitudes.
// Zero magnitude on either side yields 0 so NaN never reaches a ranking.
func CosineWithMagnitude(a []float64, am float64, b []float64, bm float64) float64 {
	if am == 0 || bm == 0 {
		return 0
	}
	s := Dot(a, b) / (am * bm)
	if math.IsNaN(s) {
		return 0
	}
	return s
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
