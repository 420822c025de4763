package mixclust

import (
	"fmt"
	"math"
)

// Merge is one step of an agglomerative clustering. Ids below the number of
// observations n are observations; id n+i is the cluster formed by merge i.
type Merge struct {
	Left, Right int
	Height      float64
	// Size is the number of observations in the merged cluster.
	Size int
}

// Dendrogram is the merge tree produced by Hierarchical.
type Dendrogram struct {
	N       int
	Linkage Linkage
	Merges  []Merge
}

// Root returns the id of the top cluster, or -1 for an empty tree.
func (dg *Dendrogram) Root() int {
	switch {
	case dg.N == 0:
		return -1
	case len(dg.Merges) == 0:
		return 0
	}
	return dg.N + len(dg.Merges) - 1
}

// Children returns the two ids merged into cluster id (id >= N).
func (dg *Dendrogram) Children(id int) (left, right int) {
	m := dg.Merges[id-dg.N]
	return m.Left, m.Right
}

// Height returns the merge height of id, 0 for an observation.
func (dg *Dendrogram) Height(id int) float64 {
	if id < dg.N {
		return 0
	}
	return dg.Merges[id-dg.N].Height
}

// Order returns the observations in left-to-right leaf order, the order a
// dendrogram plot draws them. Every observation appears exactly once.
func (dg *Dendrogram) Order() []int {
	root := dg.Root()
	if root < 0 {
		return []int{}
	}
	order := make([]int, 0, dg.N)
	stack := []int{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id < dg.N {
			order = append(order, id)
			continue
		}
		l, r := dg.Children(id)
		stack = append(stack, r, l)
	}
	return order
}

// heightTolerance absorbs rounding in the Lance-Williams updates when
// comparing consecutive merge heights.
const heightTolerance = 1e-12

// Monotone reports whether merge heights never decrease, up to rounding.
func (dg *Dendrogram) Monotone() bool {
	for i := 1; i < len(dg.Merges); i++ {
		prev := dg.Merges[i-1].Height
		if dg.Merges[i].Height < prev-heightTolerance*math.Max(1, math.Abs(prev)) {
			return false
		}
	}
	return true
}

// Validate checks the tree structure: N-1 merges, each id used as a child
// exactly once, children formed before their parent, and sizes that add up.
func (dg *Dendrogram) Validate() error {
	if dg.N == 0 {
		if len(dg.Merges) != 0 {
			return fmt.Errorf("mixclust: empty dendrogram has %d merges", len(dg.Merges))
		}
		return nil
	}
	if len(dg.Merges) != dg.N-1 {
		return fmt.Errorf("mixclust: dendrogram over %d observations has %d merges, want %d", dg.N, len(dg.Merges), dg.N-1)
	}
	used := make([]bool, 2*dg.N-1)
	size := func(id int) int {
		if id < dg.N {
			return 1
		}
		return dg.Merges[id-dg.N].Size
	}
	for i, m := range dg.Merges {
		self := dg.N + i
		for _, c := range []int{m.Left, m.Right} {
			if c < 0 || c >= self {
				return fmt.Errorf("mixclust: merge %d references id %d not yet formed", i, c)
			}
			if used[c] {
				return fmt.Errorf("mixclust: id %d merged more than once", c)
			}
			used[c] = true
		}
		if m.Left == m.Right {
			return fmt.Errorf("mixclust: merge %d joins id %d with itself", i, m.Left)
		}
		if want := size(m.Left) + size(m.Right); m.Size != want {
			return fmt.Errorf("mixclust: merge %d has size %d, want %d", i, m.Size, want)
		}
	}
	return nil
}

// Cut undoes the last k-1 merges and labels each observation with its
// remaining cluster, numbered 0..k-1 in order of first appearance by
// observation index. k must be in [1, N].
func (dg *Dendrogram) Cut(k int) ([]int, error) {
	if k < 1 || k > dg.N {
		return nil, fmt.Errorf("mixclust: cut k must be in [1, %d], got %d", dg.N, k)
	}

	// Cutting by merge order rather than by height keeps the cut well defined
	// when median or centroid linkage produce inversions.
	keep := len(dg.Merges) - (k - 1)
	uf := NewUnionFind(dg.N)
	for _, m := range dg.Merges[:keep] {
		uf.Merge(uf.Find(m.Left), uf.Find(m.Right))
	}

	labels := make([]int, dg.N)
	ids := map[int]int{}
	for i := range labels {
		root := uf.Find(i)
		l, ok := ids[root]
		if !ok {
			l = len(ids)
			ids[root] = l
		}
		labels[i] = l
	}
	return labels, nil
}
