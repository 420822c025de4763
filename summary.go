package mixclust

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DistanceSummary describes the distribution of the pairwise dissimilarities
// above the diagonal.
type DistanceSummary struct {
	Pairs  int     `json:"pairs"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	SD     float64 `json:"sd"`
}

// SummarizeDistances summarizes the upper triangle of d. Undefined entries
// are skipped. With no defined pair (fewer than two observations, or every
// pair undefined) Pairs is 0 and the statistics are left at zero.
func SummarizeDistances(d *Dissimilarity) DistanceSummary {
	values := presentValues(d.UpperTriangle())
	if len(values) == 0 {
		return DistanceSummary{}
	}
	sort.Float64s(values)
	s := DistanceSummary{
		Pairs:  len(values),
		Min:    values[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		Mean:   stat.Mean(values, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, values, nil),
		Max:    values[len(values)-1],
	}
	if len(values) > 1 {
		s.SD = stat.StdDev(values, nil)
	}
	return s
}
