package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/TrevorS/mixclust/internal/pipeline"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// printSummary prints the distance summary and one row per clustering.
func printSummary(w io.Writer, rep *pipeline.Report) {
	d := rep.Distances
	if d.Pairs == 0 {
		fmt.Fprintf(w, "%d observations, no pairs\n\n", rep.Observations)
	} else {
		fmt.Fprintf(w, "%d observations, %d pairs: min %.3f  q1 %.3f  median %.3f  mean %.3f  q3 %.3f  max %.3f\n\n",
			rep.Observations, d.Pairs, d.Min, d.Q1, d.Median, d.Mean, d.Q3, d.Max)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("method", "clusters", "detail", "ARI vs groups")

	m := rep.Medoids
	t.Row("pam", strconv.Itoa(m.K),
		fmt.Sprintf("medoids %v, avg silhouette %.3f", m.Medoids, m.AvgSilhouette), fmtARI(m.ARI))
	for _, tr := range rep.Hierarchical {
		detail := "monotone"
		if !tr.Monotone {
			detail = "has inversions"
		}
		top := 0.0
		if len(tr.Merges) > 0 {
			top = tr.Merges[len(tr.Merges)-1].Height
		}
		t.Row("hclust/"+tr.Linkage, strconv.Itoa(tr.CutK),
			fmt.Sprintf("top height %.3f, %s", top, detail), fmtARI(tr.ARI))
	}
	db := rep.DBSCAN
	t.Row("dbscan", strconv.Itoa(db.Clusters),
		fmt.Sprintf("eps %g, minPts %d, %d noise, %d core", db.Eps, db.MinPts, db.Noise, db.CorePoints), fmtARI(db.ARI))

	fmt.Fprintln(w, t.Render())
}

func fmtARI(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}
