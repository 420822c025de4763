package mixclust

import "testing"

func TestUnionFind_Singletons(t *testing.T) {
	uf := NewUnionFind(4)
	for i := 0; i < 4; i++ {
		if uf.Find(i) != i {
			t.Errorf("Find(%d) = %d, want %d", i, uf.Find(i), i)
		}
		if uf.Size(i) != 1 {
			t.Errorf("Size(%d) = %d, want 1", i, uf.Size(i))
		}
	}
}

func TestUnionFind_MergeCreatesClusterIDs(t *testing.T) {
	uf := NewUnionFind(4)

	if id := uf.Merge(0, 1); id != 4 {
		t.Fatalf("first merge id = %d, want 4", id)
	}
	if uf.Find(0) != 4 || uf.Find(1) != 4 {
		t.Errorf("Find(0)=%d Find(1)=%d, want 4", uf.Find(0), uf.Find(1))
	}
	if uf.Size(4) != 2 {
		t.Errorf("Size(4) = %d, want 2", uf.Size(4))
	}

	if id := uf.Merge(uf.Find(2), uf.Find(0)); id != 5 {
		t.Fatalf("second merge id = %d, want 5", id)
	}
	if id := uf.Merge(uf.Find(3), uf.Find(1)); id != 6 {
		t.Fatalf("third merge id = %d, want 6", id)
	}

	// All should be connected now.
	for i := 0; i < 4; i++ {
		if uf.Find(i) != 6 {
			t.Errorf("after full merge, Find(%d) = %d, want 6", i, uf.Find(i))
		}
	}
	if uf.Size(6) != 4 {
		t.Errorf("size of root = %d, want 4", uf.Size(6))
	}
}

func TestUnionFind_PathCompression(t *testing.T) {
	uf := NewUnionFind(4)

	// Nested merges leave 0 several levels below the root.
	uf.Merge(0, 1)
	uf.Merge(uf.Find(0), 2)
	uf.Merge(uf.Find(0), 3)

	root := uf.Find(0)
	// After compression, parent[0] should point directly to root.
	if uf.parent[0] != root {
		t.Errorf("after Find(0), parent[0] = %d, want root %d", uf.parent[0], root)
	}
}

func TestUnionFind_SingleObservation(t *testing.T) {
	uf := NewUnionFind(1)
	if uf.Find(0) != 0 || uf.Size(0) != 1 {
		t.Errorf("Find(0)=%d Size(0)=%d, want 0 and 1", uf.Find(0), uf.Size(0))
	}
}
