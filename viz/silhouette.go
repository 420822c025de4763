package viz

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/TrevorS/mixclust"
)

// Silhouette draws one bar per clustered observation, grouped by cluster and
// sorted by decreasing width inside each cluster.
func Silhouette(s *mixclust.Silhouette, labels []int) (*plot.Plot, error) {
	if len(labels) != len(s.Widths) {
		return nil, fmt.Errorf("viz: %d labels for %d silhouette widths", len(labels), len(s.Widths))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Silhouette plot (average width %.3f)", s.Average)
	p.X.Label.Text = "observations by cluster"
	p.Y.Label.Text = "silhouette width"
	p.Add(plotter.NewGrid())

	offset := 0
	for c := range s.ClusterAverage {
		var widths plotter.Values
		for i, l := range labels {
			if l == c {
				widths = append(widths, s.Widths[i])
			}
		}
		if len(widths) == 0 {
			continue
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(widths)))

		bars, err := plotter.NewBarChart(widths, vg.Points(4))
		if err != nil {
			return nil, fmt.Errorf("viz: cluster %d bars: %w", c, err)
		}
		bars.XMin = float64(offset)
		bars.Color = plotutil.Color(c)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("%d: n=%d, avg %.2f", c+1, len(widths), s.ClusterAverage[c]), bars)
		offset += len(widths) + 1
	}
	if offset == 0 {
		return nil, fmt.Errorf("viz: no clustered observations")
	}
	p.Legend.Top = true
	return p, nil
}
