// Package vectorindex provides a flat inner-product index over dense vectors
// and the metadata store that mirrors it positionally: metadata entry i
// describes vector i. Both persist to local files so the CLI can search
// offline.
package vectorindex

import (
	"fmt"
	"math"
	"sort"
)

// Sentinel position returned when a search slot has no vector to fill it.
const NoMatch = -1

// Searcher is the read side of the index used at query time.
type Searcher interface {
	// Search returns the top k vectors by inner product, scores descending.
	// Slots beyond the number of stored vectors carry score 0 and position
	// NoMatch.
	Search(query []float32, k int) (scores []float32, positions []int)
}

// Flat is a brute-force inner-product index. With L2-normalised vectors the
// inner product equals cosine similarity.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dim int) *Flat {
	return &Flat{dim: dim}
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Dim returns the vector dimension.
func (f *Flat) Dim() int { return f.dim }

// Add appends vectors to the index. Positions are assigned in input order,
// continuing from the current length; the caller appends metadata in the same
// order to keep the stores synchronised.
func (f *Flat) Add(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), f.dim)
		}
	}
	f.vectors = append(f.vectors, vectors...)
	return nil
}

// Search returns the top k vectors by inner product, scores descending. Ties
// keep insertion order. When k exceeds the number of stored vectors the tail
// slots are padded with score 0 and position NoMatch.
func (f *Flat) Search(query []float32, k int) ([]float32, []int) {
	if k <= 0 {
		return nil, nil
	}

	n := len(f.vectors)
	positions := make([]int, n)
	scores := make([]float32, n)
	for i, v := range f.vectors {
		positions[i] = i
		scores[i] = dot(query, v)
	}

	sort.SliceStable(positions, func(a, b int) bool {
		return scores[positions[a]] > scores[positions[b]]
	})

	outScores := make([]float32, k)
	outPositions := make([]int, k)
	for i := 0; i < k; i++ {
		if i < n {
			outPositions[i] = positions[i]
			outScores[i] = scores[positions[i]]
		} else {
			outPositions[i] = NoMatch
			outScores[i] = 0
		}
	}
	return outScores, outPositions
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Normalize scales v to unit L2 norm in place. Zero vectors are left as-is.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
