package mixclust

import (
	"fmt"
	"math"
)

// Linkage selects how the dissimilarity between merged clusters is updated.
type Linkage string

const (
	LinkageSingle   Linkage = "single"
	LinkageComplete Linkage = "complete"
	LinkageAverage  Linkage = "average"
	LinkageMedian   Linkage = "median"
	LinkageCentroid Linkage = "centroid"
	// LinkageWard minimizes the increase in within-cluster variance. The
	// dissimilarities are squared before merging and heights are reported
	// on the original scale.
	LinkageWard     Linkage = "ward"
	LinkageMcQuitty Linkage = "mcquitty"
)

// Linkages lists every supported linkage.
var Linkages = []Linkage{
	LinkageSingle, LinkageComplete, LinkageAverage, LinkageMedian,
	LinkageCentroid, LinkageWard, LinkageMcQuitty,
}

// ParseLinkage maps a linkage name to a Linkage.
func ParseLinkage(s string) (Linkage, error) {
	for _, l := range Linkages {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("mixclust: unknown linkage %q", s)
}

// Monotone reports whether heights under l never decrease from one merge to
// the next. Median and centroid linkage can produce inversions.
func (l Linkage) Monotone() bool {
	return l != LinkageMedian && l != LinkageCentroid
}

// Hierarchical builds the agglomerative merge tree of the observations in d
// under linkage l. The dendrogram always has exactly n-1 merges.
//
// At each step the closest pair of active clusters is merged; with tied
// dissimilarities the pair found first in row-major order wins.
func Hierarchical(d *Dissimilarity, l Linkage) (*Dendrogram, error) {
	if _, err := ParseLinkage(string(l)); err != nil {
		return nil, err
	}
	if err := requireDefined(d); err != nil {
		return nil, err
	}

	n := d.N()
	var merges []Merge
	if l == LinkageSingle {
		merges = singleLinkage(PrimMST(d), n)
	} else {
		merges = lanceWilliams(d, l)
	}
	return &Dendrogram{N: n, Linkage: l, Merges: merges}, nil
}

// lanceWilliams runs the generic O(n³) agglomeration. After merging i and j
// into i, the dissimilarity to every other active cluster k becomes
//
//	d(ij,k) = αi·d(i,k) + αj·d(j,k) + β·d(i,j) + γ·|d(i,k) − d(j,k)|
//
// with coefficients depending on l and the cluster sizes.
func lanceWilliams(d *Dissimilarity, l Linkage) []Merge {
	n := d.N()
	merges := make([]Merge, 0, max(n-1, 0))
	if n < 2 {
		return merges
	}

	dist := d.Flat()
	if l == LinkageWard {
		for i := range dist {
			dist[i] *= dist[i]
		}
	}

	active := make([]bool, n)
	id := make([]int, n)
	size := make([]int, n)
	for i := range active {
		active[i] = true
		id[i] = i
		size[i] = 1
	}

	for step := 0; step < n-1; step++ {
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && (bi < 0 || dist[i*n+j] < best) {
					bi, bj, best = i, j, dist[i*n+j]
				}
			}
		}

		ni, nj := float64(size[bi]), float64(size[bj])
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			nk := float64(size[k])
			dik, djk := dist[bi*n+k], dist[bj*n+k]
			v := lwUpdate(l, dik, djk, best, ni, nj, nk)
			dist[bi*n+k] = v
			dist[k*n+bi] = v
		}

		height := best
		if l == LinkageWard {
			height = math.Sqrt(best)
		}
		left, right := min(id[bi], id[bj]), max(id[bi], id[bj])
		merges = append(merges, Merge{
			Left:   left,
			Right:  right,
			Height: height,
			Size:   size[bi] + size[bj],
		})

		active[bj] = false
		id[bi] = n + step
		size[bi] += size[bj]
	}
	return merges
}

func lwUpdate(l Linkage, dik, djk, dij, ni, nj, nk float64) float64 {
	switch l {
	case LinkageComplete:
		return math.Max(dik, djk)
	case LinkageAverage:
		return (ni*dik + nj*djk) / (ni + nj)
	case LinkageMedian:
		return 0.5*dik + 0.5*djk - 0.25*dij
	case LinkageCentroid:
		nij := ni + nj
		return (ni*dik+nj*djk)/nij - ni*nj*dij/(nij*nij)
	case LinkageWard:
		t := ni + nj + nk
		return ((ni+nk)*dik + (nj+nk)*djk - nk*dij) / t
	case LinkageMcQuitty:
		return 0.5*dik + 0.5*djk
	default: // LinkageSingle
		return math.Min(dik, djk)
	}
}
