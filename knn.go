package mixclust

import (
	"fmt"
	"sort"
)

// KNNDistances returns, for each observation, the dissimilarity to its k-th
// nearest other observation. k is clamped to [1, n-1]; for n < 2 every
// distance is 0.
func KNNDistances(d *Dissimilarity, k int) []float64 {
	n := d.N()
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	k = min(max(k, 1), n-1)

	neighbors := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		neighbors = neighbors[:0]
		for j := 0; j < n; j++ {
			if j != i {
				neighbors = append(neighbors, d.At(i, j))
			}
		}
		sort.Float64s(neighbors)
		out[i] = neighbors[k-1]
	}
	return out
}

// SortedKNNDistances returns the k-nearest-neighbor distances of all
// observations in increasing order, the curve whose knee suggests a DBSCAN
// eps for MinPts = k+1.
func SortedKNNDistances(d *Dissimilarity, k int) ([]float64, error) {
	if err := requireDefined(d); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("mixclust: k must be >= 1, got %d", k)
	}
	out := KNNDistances(d, k)
	sort.Float64s(out)
	return out, nil
}
