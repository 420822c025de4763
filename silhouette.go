package mixclust

import "math"

// Silhouette holds per-observation silhouette widths for a flat clustering.
type Silhouette struct {
	// Widths[i] = (b-a)/max(a,b), where a is the mean dissimilarity from i to
	// the rest of its cluster and b the smallest mean dissimilarity to another
	// cluster. Observations alone in their cluster have width 0. Noise
	// (label -1) has width NaN and is left out of every average.
	Widths []float64

	// Neighbor[i] is the cluster achieving b, or -1 when there is none.
	Neighbor []int

	// ClusterAverage[c] is the mean width over cluster c.
	ClusterAverage []float64

	// Average is the mean width over all clustered observations, 0 when
	// fewer than two clusters exist.
	Average float64
}

// ComputeSilhouette evaluates labels (cluster ids 0..k-1, -1 for noise)
// against d.
func ComputeSilhouette(d *Dissimilarity, labels []int) *Silhouette {
	n := len(labels)
	k := 0
	for _, l := range labels {
		k = max(k, l+1)
	}

	s := &Silhouette{
		Widths:         make([]float64, n),
		Neighbor:       make([]int, n),
		ClusterAverage: make([]float64, k),
	}
	size := make([]int, k)
	for _, l := range labels {
		if l >= 0 {
			size[l]++
		}
	}

	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		s.Neighbor[i] = -1
		own := labels[i]
		if own < 0 {
			s.Widths[i] = math.NaN()
			continue
		}
		if size[own] <= 1 || k < 2 {
			continue
		}

		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if j != i && labels[j] >= 0 {
				sums[labels[j]] += d.At(i, j)
			}
		}

		a := sums[own] / float64(size[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || size[c] == 0 {
				continue
			}
			if m := sums[c] / float64(size[c]); m < b {
				b = m
				s.Neighbor[i] = c
			}
		}
		if math.IsInf(b, 1) {
			continue
		}
		if den := math.Max(a, b); den > 0 {
			s.Widths[i] = (b - a) / den
		}
	}

	var total float64
	var counted int
	for i, l := range labels {
		if l < 0 {
			continue
		}
		s.ClusterAverage[l] += s.Widths[i]
		total += s.Widths[i]
		counted++
	}
	for c := range s.ClusterAverage {
		if size[c] > 0 {
			s.ClusterAverage[c] /= float64(size[c])
		}
	}
	if k >= 2 && counted > 0 {
		s.Average = total / float64(counted)
	}
	return s
}
