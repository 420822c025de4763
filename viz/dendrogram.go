package viz

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/TrevorS/mixclust"
)

// leafLabels returns labels[i] when provided, otherwise the 1-based row
// number.
func leafLabels(n int, labels []string) ([]string, error) {
	if labels == nil {
		out := make([]string, n)
		for i := range out {
			out[i] = strconv.Itoa(i + 1)
		}
		return out, nil
	}
	if len(labels) != n {
		return nil, fmt.Errorf("viz: %d labels for %d observations", len(labels), n)
	}
	return labels, nil
}

// Dendrogram draws dg with leaves along the x axis in dg.Order() and each
// merge as a bracket at its height. labels names the observations (nil for
// row numbers).
func Dendrogram(dg *mixclust.Dendrogram, labels []string, title string) (*plot.Plot, error) {
	if dg.N == 0 {
		return nil, fmt.Errorf("viz: empty dendrogram")
	}
	names, err := leafLabels(dg.N, labels)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "height"

	// x holds the horizontal position of every node id: leaves at 1..n in
	// plot order, clusters midway between their children.
	x := make([]float64, dg.N+len(dg.Merges))
	ticks := make([]plot.Tick, 0, dg.N)
	for pos, obs := range dg.Order() {
		x[obs] = float64(pos + 1)
		ticks = append(ticks, plot.Tick{Value: x[obs], Label: names[obs]})
	}

	lo, hi := 0.0, 0.0
	color := plotutil.Color(0)
	for i, m := range dg.Merges {
		id := dg.N + i
		x[id] = (x[m.Left] + x[m.Right]) / 2
		bracket, err := plotter.NewLine(plotter.XYs{
			{X: x[m.Left], Y: dg.Height(m.Left)},
			{X: x[m.Left], Y: m.Height},
			{X: x[m.Right], Y: m.Height},
			{X: x[m.Right], Y: dg.Height(m.Right)},
		})
		if err != nil {
			return nil, fmt.Errorf("viz: merge %d: %w", i, err)
		}
		bracket.Color = color
		p.Add(bracket)
		lo, hi = math.Min(lo, m.Height), math.Max(hi, m.Height)
	}

	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Min, p.X.Max = 0.5, float64(dg.N)+0.5
	if hi == lo {
		// No merges, or every merge at height 0.
		hi = lo + 1
	}
	p.Y.Min, p.Y.Max = lo, hi*1.05
	return p, nil
}
