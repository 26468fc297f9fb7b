package vector

import (
	"fmt"

	"github.com/viant/vec/search"
)

func float32s(values []int32) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}

// CosineSimilarity computes the cosine similarity between two positional
// sequences. It returns an error if the sequences have different lengths or
// if either has zero magnitude.
func CosineSimilarity(a, b []int32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	fa, fb := float32s(a), float32s(b)
	ma := search.Float32s(fa).Magnitude()
	mb := search.Float32s(fb).Magnitude()
	if ma == 0 || mb == 0 {
		return 0, fmt.Errorf("vector: cosine similarity with zero-magnitude vector")
	}
	return 1 - float64(search.Float32s(fa).CosineDistance(fb)), nil
}

// L2Distance computes the Euclidean distance between two positional
// sequences. It returns an error if the sequences have different lengths.
func L2Distance(a, b []int32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	return float64(search.Float32s(float32s(a)).EuclideanDistance(float32s(b))), nil
}
