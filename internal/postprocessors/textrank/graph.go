package textrank

import "math"

// Graph is a symmetric sentence-similarity graph stored as a dense
// weight matrix.
type Graph struct {
	weights [][]float64
}

// BuildGraph connects every pair of sentences with their lexical overlap:
// the number of shared units divided by log|Si| + log|Sj|.
func BuildGraph(units [][]string) *Graph {
	n := len(units)
	sets := make([]map[string]struct{}, n)
	for i, u := range units {
		sets[i] = make(map[string]struct{}, len(u))
		for _, w := range u {
			sets[i][w] = struct{}{}
		}
	}

	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := similarity(sets[i], sets[j])
			weights[i][j] = w
			weights[j][i] = w
		}
	}
	return &Graph{weights: weights}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.weights)
}

// Weight returns the edge weight between i and j.
func (g *Graph) Weight(i, j int) float64 {
	return g.weights[i][j]
}

func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for w := range small {
		if _, ok := large[w]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	denom := math.Log(float64(len(a))) + math.Log(float64(len(b)))
	if denom <= 0 {
		// Two one-unit sentences that share their unit.
		denom = 1
	}
	return float64(shared) / denom
}
