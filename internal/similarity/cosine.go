package similarity

import (
	"math"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// Cosine returns the cosine similarity of a and b, clamped to [-1, 1].
// A zero-norm vector scores 0. Differing lengths fail with *domain.DimensionMismatchError.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.NewDimensionMismatch(len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return clamp(dot / (math.Sqrt(na) * math.Sqrt(nb))), nil
}
