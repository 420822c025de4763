package mixclust

import (
	"fmt"
	"math"
)

// Medoids is the result of partitioning around medoids.
type Medoids struct {
	// K is the number of clusters.
	K int

	// Medoids holds the row index of each cluster's medoid; cluster c is
	// represented by observation Medoids[c].
	Medoids []int

	// Labels assigns each observation to a cluster in 0..K-1.
	Labels []int

	// Cost is the total dissimilarity of every observation to its medoid.
	Cost float64

	// Swaps is the number of improving swaps made after the BUILD phase.
	Swaps int

	// Silhouette is the silhouette of Labels. Its Average is 0 when K == 1.
	Silhouette *Silhouette
}

// swapTolerance stops SWAP from cycling on changes lost to rounding.
const swapTolerance = 1e-12

// PAM partitions the n observations of d into k clusters around medoids.
// BUILD picks the initial medoids greedily; SWAP then exchanges a medoid with
// a non-medoid while that lowers the total cost. Candidates are scanned in
// index order and only a strictly better swap replaces the current best, so
// the result is deterministic.
func PAM(d *Dissimilarity, k int) (*Medoids, error) {
	if err := requireDefined(d); err != nil {
		return nil, err
	}
	n := d.N()
	if k < 1 || k > n {
		return nil, fmt.Errorf("mixclust: k must be in [1, %d], got %d", n, k)
	}

	medoids := buildMedoids(d, k)
	swaps := 0
	for {
		cost := totalCost(d, medoids)
		bestCost, bestSlot, bestCand := cost, -1, -1
		for slot := range medoids {
			for h := 0; h < n; h++ {
				if isMedoid(medoids, h) {
					continue
				}
				old := medoids[slot]
				medoids[slot] = h
				c := totalCost(d, medoids)
				medoids[slot] = old
				if c < bestCost-swapTolerance {
					bestCost, bestSlot, bestCand = c, slot, h
				}
			}
		}
		if bestSlot < 0 {
			break
		}
		medoids[bestSlot] = bestCand
		swaps++
	}

	labels := assign(d, medoids)
	return &Medoids{
		K:          k,
		Medoids:    medoids,
		Labels:     labels,
		Cost:       totalCost(d, medoids),
		Swaps:      swaps,
		Silhouette: ComputeSilhouette(d, labels),
	}, nil
}

// buildMedoids runs the BUILD phase: the first medoid minimizes the total
// dissimilarity to all points, each further medoid maximizes the reduction
// in cost it brings.
func buildMedoids(d *Dissimilarity, k int) []int {
	n := d.N()
	medoids := make([]int, 0, k)

	// nearest[j] is the dissimilarity from j to its closest medoid so far.
	nearest := make([]float64, n)
	for j := range nearest {
		nearest[j] = math.Inf(1)
	}

	for len(medoids) < k {
		best, bestGain := -1, math.Inf(-1)
		for i := 0; i < n; i++ {
			if isMedoid(medoids, i) {
				continue
			}
			var gain float64
			for j := 0; j < n; j++ {
				if len(medoids) == 0 {
					gain -= d.At(i, j)
				} else if dj := d.At(i, j); dj < nearest[j] {
					gain += nearest[j] - dj
				}
			}
			if gain > bestGain {
				best, bestGain = i, gain
			}
		}
		medoids = append(medoids, best)
		for j := 0; j < n; j++ {
			nearest[j] = min(nearest[j], d.At(best, j))
		}
	}
	return medoids
}

// assign labels each observation with the slot of its closest medoid, the
// lower slot winning ties. A medoid always labels itself.
func assign(d *Dissimilarity, medoids []int) []int {
	n := d.N()
	labels := make([]int, n)
	for j := 0; j < n; j++ {
		best := math.Inf(1)
		for slot, m := range medoids {
			if m == j {
				labels[j] = slot
				break
			}
			if v := d.At(m, j); v < best {
				best = v
				labels[j] = slot
			}
		}
	}
	return labels
}

func totalCost(d *Dissimilarity, medoids []int) float64 {
	var cost float64
	for j := 0; j < d.N(); j++ {
		best := math.Inf(1)
		for _, m := range medoids {
			best = min(best, d.At(m, j))
		}
		cost += best
	}
	return cost
}

func isMedoid(medoids []int, i int) bool {
	for _, m := range medoids {
		if m == i {
			return true
		}
	}
	return false
}
