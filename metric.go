package mixclust

import "math"

// DistanceMetric computes the dissimilarity between two rows of a Dataset.
// A metric returns NaN when the rows share no comparable variable.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance over the variables
// present in both rows. When some variables are missing the sum of squares is
// scaled up by p/valid before the root, so rows with gaps stay comparable.
// Scale, when set, divides each variable's difference first.
type EuclideanMetric struct {
	Scale []float64
}

func (m EuclideanMetric) Distance(a, b []float64) float64 {
	sum, valid := diffSum(a, b, m.Scale, func(d float64) float64 { return d * d })
	if valid == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum * float64(len(a)) / float64(valid))
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance with the
// same missing-value rescaling and optional Scale as EuclideanMetric.
type ManhattanMetric struct {
	Scale []float64
}

func (m ManhattanMetric) Distance(a, b []float64) float64 {
	sum, valid := diffSum(a, b, m.Scale, math.Abs)
	if valid == 0 {
		return math.NaN()
	}
	return sum * float64(len(a)) / float64(valid)
}

func diffSum(a, b, scale []float64, f func(float64) float64) (sum float64, valid int) {
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		d := a[i] - b[i]
		if scale != nil && scale[i] > 0 {
			d /= scale[i]
		}
		sum += f(d)
		valid++
	}
	return sum, valid
}
