package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/TrevorS/mixclust"
)

var markerDashes = []vg.Length{vg.Points(4), vg.Points(3)}

// Density plots a kernel density estimate of the pairwise dissimilarities.
// A positive eps is drawn as a dashed vertical marker.
func Density(est *mixclust.DensityEstimate, eps float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Dissimilarity density (N = %d, bandwidth = %.4f)", est.N, est.Bandwidth)
	p.X.Label.Text = "dissimilarity"
	p.Y.Label.Text = "density"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(est.X))
	maxY := 0.0
	for i := range est.X {
		xys[i] = plotter.XY{X: est.X[i], Y: est.Y[i]}
		maxY = max(maxY, est.Y[i])
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("viz: density line: %w", err)
	}
	line.Width = vg.Points(1.5)
	line.Color = plotutil.Color(0)
	p.Add(line)

	if eps > 0 {
		if err := addVertical(p, eps, maxY, "eps"); err != nil {
			return nil, err
		}
	}
	p.Y.Min = 0
	return p, nil
}

// ECDF plots the empirical CDF of the pairwise dissimilarities as a step
// function. A positive eps is drawn as a dashed vertical marker.
func ECDF(e *mixclust.ECDF, eps float64) (*plot.Plot, error) {
	xs, ps := e.Steps()
	if len(xs) == 0 {
		return nil, fmt.Errorf("viz: ECDF of an empty sample")
	}

	p := plot.New()
	p.Title.Text = "Empirical CDF of dissimilarities"
	p.X.Label.Text = "dissimilarity"
	p.Y.Label.Text = "Fn(x)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, 0, len(xs)+1)
	xys = append(xys, plotter.XY{X: xs[0], Y: 0})
	for i := range xs {
		xys = append(xys, plotter.XY{X: xs[i], Y: ps[i]})
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("viz: ECDF line: %w", err)
	}
	line.StepStyle = plotter.PostStep
	line.Color = plotutil.Color(0)
	p.Add(line)

	if eps > 0 {
		if err := addVertical(p, eps, 1, "eps"); err != nil {
			return nil, err
		}
	}
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// KNNDistance plots the sorted k-nearest-neighbor distances with eps as a
// dashed horizontal line.
func KNNDistance(sorted []float64, k int, eps float64) (*plot.Plot, error) {
	if len(sorted) == 0 {
		return nil, fmt.Errorf("viz: no kNN distances to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sorted %d-NN distances", k)
	p.X.Label.Text = "points (sorted by distance)"
	p.Y.Label.Text = fmt.Sprintf("%d-NN distance", k)
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(sorted))
	for i, v := range sorted {
		xys[i] = plotter.XY{X: float64(i + 1), Y: v}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("viz: kNN line: %w", err)
	}
	line.Color = plotutil.Color(0)
	p.Add(line)

	if eps > 0 {
		h := plotter.NewFunction(func(float64) float64 { return eps })
		h.Dashes = markerDashes
		h.Color = plotutil.Color(1)
		h.XMin, h.XMax = 1, float64(len(sorted))
		p.Add(h)
		p.Legend.Add(fmt.Sprintf("eps = %g", eps), h)
		p.Legend.Top = true
		p.Legend.Left = true
	}
	return p, nil
}

func addVertical(p *plot.Plot, x, top float64, name string) error {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
	if err != nil {
		return fmt.Errorf("viz: %s marker: %w", name, err)
	}
	l.Dashes = markerDashes
	l.Color = plotutil.Color(1)
	p.Add(l)
	p.Legend.Add(fmt.Sprintf("%s = %g", name, x), l)
	p.Legend.Top = true
	return nil
}
