package mixclust

import "sort"

// Edge joins observations From and To at dissimilarity Weight.
type Edge struct {
	From, To int
	Weight   float64
}

// PrimMST computes a minimum spanning tree of the complete graph whose edge
// weights are the entries of d. It returns n-1 edges in the order vertices
// join the tree, starting from observation 0. Each edge's From is the tree
// vertex that was nearest to To when To was added.
func PrimMST(d *Dissimilarity) []Edge {
	n := d.N()
	if n <= 1 {
		return nil
	}

	inTree := make([]bool, n)
	dist := make([]float64, n)
	from := make([]int, n)

	inTree[0] = true
	for j := 1; j < n; j++ {
		dist[j] = d.At(0, j)
	}

	edges := make([]Edge, 0, n-1)
	for len(edges) < n-1 {
		next := -1
		for j := 0; j < n; j++ {
			if !inTree[j] && (next == -1 || dist[j] < dist[next]) {
				next = j
			}
		}

		edges = append(edges, Edge{From: from[next], To: next, Weight: dist[next]})
		inTree[next] = true

		for k := 0; k < n; k++ {
			if !inTree[k] {
				if v := d.At(next, k); v < dist[k] {
					dist[k] = v
					from[k] = next
				}
			}
		}
	}
	return edges
}

// singleLinkage turns a spanning tree into single-linkage merges: edges are
// taken by increasing weight (equal weights keep their MST order) and each
// joins the two clusters its endpoints currently belong to.
func singleLinkage(edges []Edge, n int) []Merge {
	if len(edges) == 0 {
		return []Merge{}
	}

	sorted := append([]Edge(nil), edges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})

	uf := NewUnionFind(n)
	merges := make([]Merge, 0, len(sorted))
	for _, e := range sorted {
		a, b := uf.Find(e.From), uf.Find(e.To)
		a, b = min(a, b), max(a, b)
		id := uf.Merge(a, b)
		merges = append(merges, Merge{Left: a, Right: b, Height: e.Weight, Size: uf.Size(id)})
	}
	return merges
}
