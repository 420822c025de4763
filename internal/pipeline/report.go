package pipeline

import (
	"math"
	"time"

	"github.com/TrevorS/mixclust"
)

// Report is the JSON form of a run.
type Report struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source"`
	Seed      uint64    `json:"seed,omitempty"`

	Observations int        `json:"observations"`
	Variables    []Variable `json:"variables"`

	Distances mixclust.DistanceSummary `json:"distances"`

	Medoids      MedoidsReport `json:"medoids"`
	Hierarchical []TreeReport  `json:"hierarchical"`
	DBSCAN       DBSCANReport  `json:"dbscan"`
	Artifacts    []Artifact    `json:"artifacts,omitempty"`
}

// Variable describes one input column.
type Variable struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// KScore is the average silhouette width of one candidate k.
type KScore struct {
	K             int     `json:"k"`
	Feasible      bool    `json:"feasible"`
	AvgSilhouette float64 `json:"avg_silhouette"`
}

// MedoidsReport summarizes the silhouette-selected PAM clustering.
type MedoidsReport struct {
	K             int      `json:"k"`
	Scores        []KScore `json:"scores"`
	Medoids       []int    `json:"medoids"`
	Labels        []int    `json:"labels"`
	Cost          float64  `json:"cost"`
	AvgSilhouette float64  `json:"avg_silhouette"`
	// ARI compares Labels with the latent groups when they are known.
	ARI *float64 `json:"ari,omitempty"`
}

// Merge is one dendrogram merge.
type Merge struct {
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	Height float64 `json:"height"`
	Size   int     `json:"size"`
}

// TreeReport summarizes one hierarchical clustering. CutLabels cuts the tree
// into the number of clusters selected for the medoids, for comparison.
type TreeReport struct {
	Linkage   string   `json:"linkage"`
	Monotone  bool     `json:"monotone"`
	Order     []int    `json:"order"`
	Merges    []Merge  `json:"merges"`
	CutK      int      `json:"cut_k"`
	CutLabels []int    `json:"cut_labels"`
	ARI       *float64 `json:"ari,omitempty"`
}

// DBSCANReport summarizes the density clustering.
type DBSCANReport struct {
	Eps         float64   `json:"eps"`
	MinPts      int       `json:"min_pts"`
	Clusters    int       `json:"clusters"`
	Noise       int       `json:"noise"`
	Labels      []int     `json:"labels"`
	CorePoints  int       `json:"core_points"`
	KNNK        int       `json:"knn_k"`
	KNNDistance []float64 `json:"knn_distances"`
	ARI         *float64  `json:"ari,omitempty"`
}

// Artifact is a file written by WriteArtifacts.
type Artifact struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// BuildReport converts res into its JSON form.
func BuildReport(res *Result, seed uint64, eps float64, minPts int) (*Report, error) {
	ds := res.Dataset
	rep := &Report{
		RunID:        res.RunID,
		StartedAt:    res.StartedAt,
		Source:       res.Source,
		Observations: ds.N(),
		Distances:    res.Summary,
	}
	if res.Source == "synthetic" {
		rep.Seed = seed
	}
	for _, v := range ds.Vars {
		rep.Variables = append(rep.Variables, Variable{Name: v.Name, Kind: string(v.Kind)})
	}

	sel := res.Selection
	rep.Medoids = MedoidsReport{
		K:             sel.K,
		Medoids:       sel.Best.Medoids,
		Labels:        sel.Best.Labels,
		Cost:          sel.Best.Cost,
		AvgSilhouette: sel.Best.Silhouette.Average,
	}
	for i, c := range sel.Criteria {
		score := KScore{K: sel.Range.Min + i, Feasible: !math.IsNaN(c)}
		if score.Feasible {
			score.AvgSilhouette = c
		}
		rep.Medoids.Scores = append(rep.Medoids.Scores, score)
	}
	var err error
	if rep.Medoids.ARI, err = agreement(ds.Groups, sel.Best.Labels); err != nil {
		return nil, err
	}

	for _, tree := range res.Trees {
		tr := TreeReport{
			Linkage:  string(tree.Linkage),
			Monotone: tree.Monotone(),
			Order:    tree.Order(),
			CutK:     sel.K,
		}
		for _, m := range tree.Merges {
			tr.Merges = append(tr.Merges, Merge{Left: m.Left, Right: m.Right, Height: m.Height, Size: m.Size})
		}
		if tr.CutLabels, err = tree.Cut(sel.K); err != nil {
			return nil, err
		}
		if tr.ARI, err = agreement(ds.Groups, tr.CutLabels); err != nil {
			return nil, err
		}
		rep.Hierarchical = append(rep.Hierarchical, tr)
	}

	db := res.DBSCAN
	rep.DBSCAN = DBSCANReport{
		Eps:         eps,
		MinPts:      minPts,
		Clusters:    db.NumClusters,
		Noise:       db.NumNoise,
		Labels:      db.Labels,
		KNNK:        res.KNNK,
		KNNDistance: res.KNN,
	}
	for _, c := range db.Core {
		if c {
			rep.DBSCAN.CorePoints++
		}
	}
	if rep.DBSCAN.ARI, err = agreement(ds.Groups, db.Labels); err != nil {
		return nil, err
	}
	return rep, nil
}

// agreement returns the adjusted Rand index against the latent groups, or
// nil when they are unknown.
func agreement(groups, labels []int) (*float64, error) {
	if groups == nil {
		return nil, nil
	}
	ari, err := mixclust.AdjustedRandIndex(groups, labels)
	if err != nil {
		return nil, err
	}
	return &ari, nil
}
