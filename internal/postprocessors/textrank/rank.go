package textrank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNotConverged is returned when scores still move after the
// iteration cap.
var ErrNotConverged = errors.New("ranking did not converge")

// ErrInvalidScore is returned when a score becomes NaN or infinite.
var ErrInvalidScore = errors.New("ranking produced an invalid score")

// pagerank runs weighted PageRank over g until the largest score change
// drops below tolerance.
func (s *Summarizer) pagerank(ctx context.Context, g *Graph) ([]float64, error) {
	n := g.Len()
	if n == 0 {
		return nil, nil
	}

	outWeight := make([]float64, n)
	for j := 0; j < n; j++ {
		for k := 0; k < n; k++ {
			outWeight[j] += g.Weight(j, k)
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)
	base := (1 - s.damping) / float64(n)

	for iter := 0; iter < s.maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		delta := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if w := g.Weight(j, i); w > 0 && outWeight[j] > 0 {
					sum += w / outWeight[j] * scores[j]
				}
			}
			next[i] = base + s.damping*sum
			if math.IsNaN(next[i]) || math.IsInf(next[i], 0) {
				return nil, fmt.Errorf("%w: node %d", ErrInvalidScore, i)
			}
			delta = math.Max(delta, math.Abs(next[i]-scores[i]))
		}
		scores, next = next, scores
		if delta < s.tolerance {
			return scores, nil
		}
	}
	return nil, fmt.Errorf("%w after %d iterations", ErrNotConverged, s.maxIterations)
}

// Select returns the indexes of the n highest scores in ascending index
// order. Equal scores prefer the earlier sentence.
func Select(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	sort.Ints(idx)
	return idx
}
