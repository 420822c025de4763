package mixclust

import (
	"fmt"
	"math"
)

// KRange is the inclusive range of cluster counts searched by SelectK.
type KRange struct {
	Min, Max int
}

// DefaultKRange searches k = 1..5.
func DefaultKRange() KRange { return KRange{Min: 1, Max: 5} }

// KSelection is the outcome of SelectK.
type KSelection struct {
	// K is the selected number of clusters, within the searched range.
	K int

	// Best is the PAM result for K.
	Best *Medoids

	// Criteria[i] is the average silhouette width for k = Range.Min+i. k = 1
	// scores 0. Values of k that could not be evaluated (k > n-1) are NaN.
	Criteria []float64

	Range KRange
}

// SelectK runs PAM for every k in r and keeps the k with the largest average
// silhouette width; the smallest such k wins ties. A one-cluster solution
// scores 0, so it is chosen only when no split has a positive average width.
func SelectK(d *Dissimilarity, r KRange) (*KSelection, error) {
	if r.Min < 1 || r.Max < r.Min {
		return nil, fmt.Errorf("mixclust: invalid k range [%d, %d]", r.Min, r.Max)
	}
	if err := requireDefined(d); err != nil {
		return nil, err
	}
	n := d.N()
	if n == 0 {
		return nil, fmt.Errorf("mixclust: cannot select k for an empty matrix")
	}

	sel := &KSelection{
		K:        -1,
		Criteria: make([]float64, r.Max-r.Min+1),
		Range:    r,
	}
	bestScore := math.Inf(-1)
	for k := r.Min; k <= r.Max; k++ {
		idx := k - r.Min
		// Silhouettes need 2 <= k <= n-1; k = 1 is still allowed.
		if k > 1 && k > n-1 || k > n {
			sel.Criteria[idx] = math.NaN()
			continue
		}
		m, err := PAM(d, k)
		if err != nil {
			return nil, err
		}
		score := m.Silhouette.Average
		sel.Criteria[idx] = score
		if score > bestScore {
			bestScore = score
			sel.K = k
			sel.Best = m
		}
	}
	if sel.Best == nil {
		return nil, fmt.Errorf("mixclust: no k in [%d, %d] is feasible for n=%d", r.Min, r.Max, n)
	}
	return sel, nil
}
