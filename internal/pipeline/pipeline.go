// Package pipeline runs a complete clustering analysis: load or generate the
// dataset, compute the dissimilarity matrix once, run the medoid,
// hierarchical and density estimators over it, and write plots and a JSON
// report.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.Run(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.WriteArtifacts(ctx, res, cfg)
//
// Stages run one after another; the context is checked between stages so
// an interrupted run stops at the next stage boundary.
package pipeline

import (
	"context"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/TrevorS/mixclust"
	"github.com/TrevorS/mixclust/internal/config"
)

// Result holds the in-memory outputs of a run.
type Result struct {
	RunID     string
	StartedAt time.Time
	Source    string

	Dataset       *mixclust.Dataset
	Dissimilarity *mixclust.Dissimilarity
	Summary       mixclust.DistanceSummary

	Selection *mixclust.KSelection
	Trees     []*mixclust.Dendrogram
	DBSCAN    *mixclust.DBSCANResult

	// KNN is the sorted k-nearest-neighbor distance curve used to judge eps.
	KNN  []float64
	KNNK int
}

// Runner executes runs and logs progress.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a Runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger}
}

// Run executes every analysis stage for cfg.
func (r *Runner) Run(ctx context.Context, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	res := &Result{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}

	stages := []struct {
		name string
		run  func(context.Context, config.Config, *Result) error
	}{
		{"load data", r.loadData},
		{"dissimilarity", r.computeDissimilarity},
		{"medoids", r.selectMedoids},
		{"hierarchical", r.buildTrees},
		{"dbscan", r.runDBSCAN},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := st.run(ctx, cfg, res); err != nil {
			return nil, errors.Wrapf(err, "stage %s", st.name)
		}
	}
	return res, nil
}

func (r *Runner) loadData(_ context.Context, cfg config.Config, res *Result) error {
	prog := newProgress(r.logger)
	if cfg.Input == "" {
		ds, err := mixclust.Generate(cfg.GenerateConfig())
		if err != nil {
			return err
		}
		res.Dataset = ds
		res.Source = "synthetic"
		prog.done("Generated synthetic data", "rows", ds.N(), "groups", len(cfg.Groups), "seed", cfg.Seed)
		return nil
	}

	opts, err := cfg.ReadOptions()
	if err != nil {
		return err
	}
	f, err := os.Open(cfg.Input)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	ds, err := mixclust.ReadDelimited(f, opts)
	if err != nil {
		return errors.Wrapf(err, "read %s", cfg.Input)
	}
	res.Dataset = ds
	res.Source = cfg.Input
	prog.done("Loaded data", "path", cfg.Input, "rows", ds.N(), "variables", ds.P())
	return nil
}

func (r *Runner) computeDissimilarity(_ context.Context, cfg config.Config, res *Result) error {
	prog := newProgress(r.logger)
	d, err := mixclust.ComputeDissimilarity(res.Dataset, cfg.DissimilarityConfig())
	if err != nil {
		return err
	}
	if d.HasNaN() {
		return errors.New("some pairs share no comparable variable; drop rows with too many missing values")
	}
	res.Dissimilarity = d
	res.Summary = mixclust.SummarizeDistances(d)
	prog.done("Computed dissimilarities",
		"metric", cfg.Metric, "pairs", res.Summary.Pairs,
		"min", res.Summary.Min, "mean", res.Summary.Mean, "max", res.Summary.Max)
	return nil
}

func (r *Runner) selectMedoids(_ context.Context, cfg config.Config, res *Result) error {
	prog := newProgress(r.logger)
	sel, err := mixclust.SelectK(res.Dissimilarity, mixclust.KRange{Min: cfg.KMin, Max: cfg.KMax})
	if err != nil {
		return err
	}
	res.Selection = sel
	for i, c := range sel.Criteria {
		if !math.IsNaN(c) {
			r.logger.Debug("Average silhouette", "k", sel.Range.Min+i, "width", c)
		}
	}
	prog.done("Selected number of medoids", "k", sel.K, "medoids", sel.Best.Medoids,
		"avg_silhouette", sel.Best.Silhouette.Average)
	return nil
}

func (r *Runner) buildTrees(ctx context.Context, cfg config.Config, res *Result) error {
	for _, name := range cfg.Linkages {
		if err := ctx.Err(); err != nil {
			return err
		}
		prog := newProgress(r.logger)
		l, err := mixclust.ParseLinkage(name)
		if err != nil {
			return err
		}
		tree, err := mixclust.Hierarchical(res.Dissimilarity, l)
		if err != nil {
			return errors.Wrapf(err, "%s linkage", name)
		}
		if !tree.Monotone() && l.Monotone() {
			return errors.AssertionFailedf("%s linkage produced decreasing heights", name)
		}
		res.Trees = append(res.Trees, tree)
		top := 0.0
		if len(tree.Merges) > 0 {
			top = tree.Merges[len(tree.Merges)-1].Height
		}
		prog.done("Built dendrogram", "linkage", name, "merges", len(tree.Merges),
			"top_height", top, "monotone", tree.Monotone())
	}
	return nil
}

func (r *Runner) runDBSCAN(_ context.Context, cfg config.Config, res *Result) error {
	prog := newProgress(r.logger)
	db, err := mixclust.DBSCAN(res.Dissimilarity, cfg.DBSCANConfig())
	if err != nil {
		return err
	}
	res.DBSCAN = db
	res.KNNK = cfg.KNNK()
	res.KNN, err = mixclust.SortedKNNDistances(res.Dissimilarity, res.KNNK)
	if err != nil {
		return err
	}
	if db.NumClusters == 0 {
		r.logger.Warn("DBSCAN found no clusters; eps may be too small", "eps", cfg.Eps, "min_pts", cfg.MinPts)
	}
	prog.done("Ran DBSCAN", "eps", cfg.Eps, "min_pts", cfg.MinPts,
		"clusters", db.NumClusters, "noise", db.NumNoise)
	return nil
}
