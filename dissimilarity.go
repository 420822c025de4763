package mixclust

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Dissimilarity is a symmetric n×n matrix of pairwise dissimilarities with a
// zero diagonal. It is computed once and shared read-only by the estimators.
type Dissimilarity struct {
	sym *mat.SymDense
}

// NewDissimilarity returns an all-zero n×n dissimilarity matrix.
func NewDissimilarity(n int) *Dissimilarity {
	if n == 0 {
		return &Dissimilarity{}
	}
	return &Dissimilarity{sym: mat.NewSymDense(n, nil)}
}

// FromFlat builds a Dissimilarity from a flat row-major n*n slice. Only the
// upper triangle is read; use Validate to check symmetry of the source first
// if it comes from an untrusted place.
func FromFlat(flat []float64, n int) (*Dissimilarity, error) {
	if len(flat) != n*n {
		return nil, fmt.Errorf("mixclust: flat matrix length %d does not match n*n = %d (n=%d)", len(flat), n*n, n)
	}
	d := NewDissimilarity(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.set(i, j, flat[i*n+j])
		}
	}
	return d, nil
}

// FromDense builds a Dissimilarity from a square gonum matrix, rejecting
// asymmetric input.
func FromDense(m mat.Matrix) (*Dissimilarity, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("mixclust: matrix is %dx%d, want square", r, c)
	}
	d := NewDissimilarity(r)
	for i := 0; i < r; i++ {
		if v := m.At(i, i); v != 0 {
			return nil, fmt.Errorf("mixclust: diagonal entry (%d,%d) = %g, want 0", i, i, v)
		}
		for j := i + 1; j < r; j++ {
			a, b := m.At(i, j), m.At(j, i)
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return nil, fmt.Errorf("mixclust: matrix not symmetric at (%d,%d): %g != %g", i, j, a, b)
			}
			d.set(i, j, a)
		}
	}
	return d, nil
}

// N returns the number of observations.
func (d *Dissimilarity) N() int {
	if d == nil || d.sym == nil {
		return 0
	}
	return d.sym.SymmetricDim()
}

// At returns the dissimilarity between observations i and j.
func (d *Dissimilarity) At(i, j int) float64 { return d.sym.At(i, j) }

func (d *Dissimilarity) set(i, j int, v float64) { d.sym.SetSym(i, j, v) }

// Row returns a copy of row i.
func (d *Dissimilarity) Row(i int) []float64 {
	n := d.N()
	row := make([]float64, n)
	for j := 0; j < n; j++ {
		row[j] = d.sym.At(i, j)
	}
	return row
}

// Matrix exposes the underlying matrix for read-only use with gonum.
func (d *Dissimilarity) Matrix() mat.Symmetric { return d.sym }

// UpperTriangle returns the n(n-1)/2 entries above the diagonal in row-major
// order: (0,1), (0,2), ..., (1,2), ...
func (d *Dissimilarity) UpperTriangle() []float64 {
	n := d.N()
	if n < 2 {
		return []float64{}
	}
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, d.sym.At(i, j))
		}
	}
	return out
}

// Flat returns the full matrix as a flat row-major slice of length n*n.
func (d *Dissimilarity) Flat() []float64 {
	n := d.N()
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := d.sym.At(i, j)
			out[i*n+j] = v
			out[j*n+i] = v
		}
	}
	return out
}

// HasNaN reports whether any off-diagonal entry is undefined.
func (d *Dissimilarity) HasNaN() bool {
	n := d.N()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.IsNaN(d.sym.At(i, j)) {
				return true
			}
		}
	}
	return false
}

// Validate checks that every entry is defined, non-negative and finite, and
// that the diagonal is zero. When unit is true, entries must also lie in
// [0, 1] as Gower dissimilarities do.
func (d *Dissimilarity) Validate(unit bool) error {
	n := d.N()
	for i := 0; i < n; i++ {
		if v := d.sym.At(i, i); v != 0 {
			return fmt.Errorf("mixclust: diagonal entry (%d,%d) = %g, want 0", i, i, v)
		}
		for j := i + 1; j < n; j++ {
			v := d.sym.At(i, j)
			switch {
			case math.IsNaN(v):
				return fmt.Errorf("mixclust: dissimilarity (%d,%d) is undefined (no comparable variables)", i, j)
			case math.IsInf(v, 0) || v < 0:
				return fmt.Errorf("mixclust: dissimilarity (%d,%d) = %g, want finite and >= 0", i, j, v)
			case unit && v > 1:
				return fmt.Errorf("mixclust: dissimilarity (%d,%d) = %g, want <= 1", i, j, v)
			}
		}
	}
	return nil
}

// requireDefined is the guard every estimator runs before touching d.
func requireDefined(d *Dissimilarity) error {
	if d == nil {
		return fmt.Errorf("mixclust: nil dissimilarity matrix")
	}
	return d.Validate(false)
}
