package mixclust

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// GowerMetric computes Gower's dissimilarity between rows of the dataset it
// was built from. For each variable v the per-pair distance d_v is:
//
//   - Continuous: |x-y| / range(v), or 0 when the column is constant
//   - Ordinal: |rank(x)-rank(y)| / (levels-1), ranks taken over the distinct
//     observed levels
//   - SymmetricBinary, Nominal: 0 when equal, 1 otherwise
//   - AsymmetricBinary: as symmetric, but a 0-0 pair is not counted
//
// The result is sum(w_v*d_v) / sum(w_v) over the variables counted for the
// pair; a variable is not counted when either value is NaN. A pair with no
// counted variable has an undefined (NaN) dissimilarity.
type GowerMetric struct {
	kinds   []VarKind
	weights []float64
	ranges  []float64
	// levels holds the sorted distinct observed levels of each ordinal
	// variable; nil for other kinds.
	levels [][]float64
}

// NewGowerMetric prepares a GowerMetric for ds. weights may be nil for equal
// weighting; otherwise it needs one non-negative entry per variable.
func NewGowerMetric(ds *Dataset, weights []float64) (*GowerMetric, error) {
	p := ds.P()
	if weights == nil {
		weights = make([]float64, p)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != p {
		return nil, fmt.Errorf("mixclust: %d weights for %d variables", len(weights), p)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("mixclust: weight %d must be finite and >= 0, got %f", i, w)
		}
	}

	g := &GowerMetric{
		kinds:   make([]VarKind, p),
		weights: append([]float64(nil), weights...),
		ranges:  make([]float64, p),
		levels:  make([][]float64, p),
	}
	for j, v := range ds.Vars {
		g.kinds[j] = v.Kind
		observed := presentValues(ds.Column(j))
		switch v.Kind {
		case Continuous:
			if len(observed) > 0 {
				g.ranges[j] = floats.Max(observed) - floats.Min(observed)
			}
		case Ordinal:
			g.levels[j] = distinctSorted(observed)
		}
	}
	return g, nil
}

func (g *GowerMetric) Distance(a, b []float64) float64 {
	var num, den float64
	for v, kind := range g.kinds {
		x, y := a[v], b[v]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		var d float64
		switch kind {
		case Continuous:
			if r := g.ranges[v]; r > 0 {
				d = math.Abs(x-y) / r
			}
		case Ordinal:
			if levels := g.levels[v]; len(levels) > 1 {
				d = math.Abs(rankOf(levels, x)-rankOf(levels, y)) / float64(len(levels)-1)
			}
		case AsymmetricBinary:
			if x == 0 && y == 0 {
				continue
			}
			d = mismatch(x, y)
		default: // SymmetricBinary, Nominal
			d = mismatch(x, y)
		}
		w := g.weights[v]
		num += w * d
		den += w
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

func mismatch(x, y float64) float64 {
	if x == y {
		return 0
	}
	return 1
}

// rankOf returns the 0-based position of x among the sorted levels. Values
// that were never observed fall at their insertion point.
func rankOf(levels []float64, x float64) float64 {
	return float64(sort.SearchFloat64s(levels, x))
}

func presentValues(col []float64) []float64 {
	out := make([]float64, 0, len(col))
	for _, x := range col {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func distinctSorted(xs []float64) []float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	out := s[:0]
	for _, x := range s {
		if len(out) == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
