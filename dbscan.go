package mixclust

import (
	"fmt"
	"math"
)

// DBSCANConfig controls density-based clustering.
// Start with [DefaultDBSCANConfig] and override the fields you need.
type DBSCANConfig struct {
	// Eps is the neighborhood radius: j is a neighbor of i when
	// d(i,j) <= Eps. Must be >= 0. Default: 0.3.
	Eps float64

	// MinPts is the neighborhood size, counting the point itself, at which
	// a point becomes a core point. Must be >= 1. Default: 5.
	MinPts int

	// BorderPoints assigns non-core points within Eps of a core point to
	// that core point's cluster. When false only core points are clustered
	// and everything else is noise. Default: true.
	BorderPoints bool
}

// DefaultDBSCANConfig returns Eps 0.3, MinPts 5 with border points assigned.
func DefaultDBSCANConfig() DBSCANConfig {
	return DBSCANConfig{Eps: 0.3, MinPts: 5, BorderPoints: true}
}

// DBSCANResult contains the output of DBSCAN.
type DBSCANResult struct {
	// Labels assigns each point to a cluster (0-indexed cluster ID) or -1 for
	// noise.
	Labels []int

	// Core marks the core points.
	Core []bool

	// NumClusters is the number of clusters found.
	NumClusters int

	// NumNoise is the number of points labeled -1.
	NumNoise int
}

func validateDBSCANConfig(cfg *DBSCANConfig) error {
	if cfg.Eps < 0 || math.IsNaN(cfg.Eps) {
		return fmt.Errorf("mixclust: Eps must be >= 0, got %f", cfg.Eps)
	}
	if cfg.MinPts < 1 {
		return fmt.Errorf("mixclust: MinPts must be >= 1, got %d", cfg.MinPts)
	}
	return nil
}

// DBSCAN clusters the observations of d by density. Clusters are numbered in
// the order their first core point appears by index, and each cluster is
// grown breadth-first from that point. A border point reachable from several
// clusters joins the first one to reach it.
func DBSCAN(d *Dissimilarity, cfg DBSCANConfig) (*DBSCANResult, error) {
	if err := validateDBSCANConfig(&cfg); err != nil {
		return nil, err
	}
	if err := requireDefined(d); err != nil {
		return nil, err
	}

	n := d.N()
	neighbors := make([][]int, n)
	core := make([]bool, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if d.At(i, j) <= cfg.Eps {
				neighbors[i] = append(neighbors[i], j)
			}
		}
		core[i] = len(neighbors[i]) >= cfg.MinPts
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	cluster := 0
	for seed := 0; seed < n; seed++ {
		if !core[seed] || labels[seed] != -1 {
			continue
		}
		labels[seed] = cluster
		queue := []int{seed}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, q := range neighbors[p] {
				if labels[q] != -1 {
					continue
				}
				if core[q] {
					labels[q] = cluster
					queue = append(queue, q)
				} else if cfg.BorderPoints {
					labels[q] = cluster
				}
			}
		}
		cluster++
	}

	res := &DBSCANResult{Labels: labels, Core: core, NumClusters: cluster}
	for _, l := range labels {
		if l == -1 {
			res.NumNoise++
		}
	}
	return res, nil
}
