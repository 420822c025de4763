package mixclust

// UnionFind is a disjoint-set forest sized for dendrogram construction:
// observations 0..n-1 plus merged cluster ids n..2n-2. Merging two roots
// makes a fresh cluster id their shared parent, so every root is the id of
// the dendrogram node it represents.
type UnionFind struct {
	parent []int
	size   []int
	// next is the id the next merge will receive, starting at n.
	next int
}

// NewUnionFind creates a UnionFind with n singleton observations.
func NewUnionFind(n int) *UnionFind {
	total := max(2*n-1, 1)
	uf := &UnionFind{
		parent: make([]int, total),
		size:   make([]int, total),
		next:   n,
	}
	for i := range uf.parent {
		uf.parent[i] = -1 // root
	}
	for i := 0; i < n; i++ {
		uf.size[i] = 1
	}
	return uf
}

// Find returns the cluster id currently containing x, compressing the path.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Merge joins the clusters with root ids a and b under a new cluster id,
// which it returns.
func (uf *UnionFind) Merge(a, b int) int {
	id := uf.next
	uf.next++
	uf.size[id] = uf.size[a] + uf.size[b]
	uf.parent[a] = id
	uf.parent[b] = id
	return id
}

// Size returns the number of observations under cluster id.
func (uf *UnionFind) Size(id int) int { return uf.size[id] }
