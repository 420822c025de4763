package mixclust

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DensityConfig controls kernel density estimation.
type DensityConfig struct {
	// Bandwidth is the Gaussian kernel standard deviation. 0 selects it with
	// Silverman's rule of thumb (see SilvermanBandwidth).
	Bandwidth float64

	// Points is the number of evenly spaced grid points. Default: 512.
	Points int

	// Cut extends the grid this many bandwidths beyond the data on each
	// side. Default: 3.
	Cut float64
}

// DefaultDensityConfig returns a 512-point grid with automatic bandwidth.
func DefaultDensityConfig() DensityConfig {
	return DensityConfig{Points: 512, Cut: 3}
}

// DensityEstimate is a Gaussian kernel density evaluated on a grid.
type DensityEstimate struct {
	X, Y      []float64
	Bandwidth float64
	// N is the number of values the estimate was built from.
	N int
}

// SilvermanBandwidth returns 0.9 * min(sd, IQR/1.34) * n^(-1/5). When that
// spread is 0 it falls back to the sd, then to |x[0]|, then to 1, so the
// result is always positive.
func SilvermanBandwidth(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 1
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sd := stat.StdDev(sorted, nil)
	iqr := stat.Quantile(0.75, stat.LinInterp, sorted, nil) - stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	lo := math.Min(sd, iqr/1.34)
	switch {
	case lo > 0:
	case sd > 0:
		lo = sd
	case values[0] != 0:
		lo = math.Abs(values[0])
	default:
		lo = 1
	}
	return 0.9 * lo * math.Pow(float64(n), -0.2)
}

// Density estimates the density of values with a Gaussian kernel.
func Density(values []float64, cfg DensityConfig) (*DensityEstimate, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("mixclust: density of an empty sample")
	}
	if cfg.Points == 0 {
		cfg.Points = 512
	}
	if cfg.Points < 2 {
		return nil, fmt.Errorf("mixclust: density needs at least 2 grid points, got %d", cfg.Points)
	}
	if cfg.Bandwidth < 0 || cfg.Cut < 0 {
		return nil, fmt.Errorf("mixclust: Bandwidth and Cut must be >= 0")
	}
	bw := cfg.Bandwidth
	if bw == 0 {
		bw = SilvermanBandwidth(values)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	lo -= cfg.Cut * bw
	hi += cfg.Cut * bw

	est := &DensityEstimate{
		X:         make([]float64, cfg.Points),
		Y:         make([]float64, cfg.Points),
		Bandwidth: bw,
		N:         len(values),
	}
	kernel := distuv.UnitNormal
	step := (hi - lo) / float64(cfg.Points-1)
	scale := 1 / (float64(len(values)) * bw)
	for g := range est.X {
		x := lo + float64(g)*step
		var sum float64
		for _, v := range values {
			sum += kernel.Prob((x - v) / bw)
		}
		est.X[g] = x
		est.Y[g] = sum * scale
	}
	return est, nil
}

// ECDF is the empirical cumulative distribution function of a sample.
type ECDF struct {
	sorted []float64
}

// NewECDF builds the ECDF of values.
func NewECDF(values []float64) *ECDF {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return &ECDF{sorted: sorted}
}

// At returns the fraction of the sample <= x.
func (e *ECDF) At(x float64) float64 {
	if len(e.sorted) == 0 {
		return 0
	}
	return stat.CDF(x, stat.Empirical, e.sorted, nil)
}

// Steps returns the jump points of the ECDF: each distinct value paired with
// the cumulative fraction reached at it.
func (e *ECDF) Steps() (xs, ps []float64) {
	n := float64(len(e.sorted))
	for i, v := range e.sorted {
		if i+1 < len(e.sorted) && e.sorted[i+1] == v {
			continue
		}
		xs = append(xs, v)
		ps = append(ps, float64(i+1)/n)
	}
	return xs, ps
}
