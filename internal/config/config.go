// Package config loads and validates the settings of a clustering run.
//
// Settings come from a TOML file whose keys mirror the Config fields; any
// key left out keeps its value from [Default]. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/TrevorS/mixclust"
	"github.com/TrevorS/mixclust/viz"
)

// Group mirrors mixclust.GroupParams in the file format.
type Group struct {
	Mean     float64 `toml:"mean"`
	SD       float64 `toml:"sd"`
	BinaryP  float64 `toml:"binary_p"`
	OrdinalP float64 `toml:"ordinal_p"`
}

// Config holds every setting of a run.
type Config struct {
	// Synthetic data. Ignored when Input is set.
	Seed          uint64  `toml:"seed"`
	GroupSize     int     `toml:"group_size"`
	Groups        []Group `toml:"groups"`
	OrdinalTrials int     `toml:"ordinal_trials"`

	// Input data. Types declares column kinds as "name=kind,...".
	Input       string `toml:"input"`
	Types       string `toml:"types"`
	Delimiter   string `toml:"delimiter"`
	GroupColumn string `toml:"group_column"`

	// Dissimilarity.
	Metric      string    `toml:"metric"`
	Weights     []float64 `toml:"weights"`
	Standardize bool      `toml:"standardize"`
	Workers     int       `toml:"workers"`

	// Medoids.
	KMin int `toml:"k_min"`
	KMax int `toml:"k_max"`

	// Hierarchical clustering.
	Linkages []string `toml:"linkages"`

	// DBSCAN. KNN is the k of the kNN-distance plot; 0 means MinPts-1.
	Eps          float64 `toml:"eps"`
	MinPts       int     `toml:"min_pts"`
	BorderPoints bool    `toml:"border_points"`
	KNN          int     `toml:"knn_k"`

	// Output. An empty OutputDir skips plots and the report file.
	OutputDir string  `toml:"output_dir"`
	Format    string  `toml:"format"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
}

// Default returns the settings of the demo: three synthetic groups of 15,
// Gower dissimilarity, k searched in 1..5, median/single/complete linkage
// and DBSCAN with eps 0.3.
func Default() Config {
	gen := mixclust.DefaultGenerateConfig()
	groups := make([]Group, len(gen.Groups))
	for i, g := range gen.Groups {
		groups[i] = Group{Mean: g.Mean, SD: g.SD, BinaryP: g.BinaryP, OrdinalP: g.OrdinalP}
	}
	db := mixclust.DefaultDBSCANConfig()
	kr := mixclust.DefaultKRange()
	return Config{
		Seed:          gen.Seed,
		GroupSize:     gen.GroupSize,
		Groups:        groups,
		OrdinalTrials: gen.OrdinalTrials,
		Delimiter:     ",",
		Metric:        string(mixclust.MetricGower),
		KMin:          kr.Min,
		KMax:          kr.Max,
		Linkages: []string{
			string(mixclust.LinkageMedian),
			string(mixclust.LinkageSingle),
			string(mixclust.LinkageComplete),
		},
		Eps:          db.Eps,
		MinPts:       db.MinPts,
		BorderPoints: db.BorderPoints,
		Format:       string(viz.FormatSVG),
		Width:        720,
		Height:       480,
	}
}

// Load reads a TOML file over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Newf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// Validate checks the settings the library does not check itself before the
// run starts.
func (c Config) Validate() error {
	if c.Input == "" && c.GroupSize < 1 {
		return errors.Newf("group_size must be >= 1, got %d", c.GroupSize)
	}
	if c.Input == "" && len(c.Groups) == 0 {
		return errors.New("at least one [[groups]] entry is required for synthetic data")
	}
	if len([]rune(c.Delimiter)) != 1 {
		return errors.Newf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if c.KMin < 1 || c.KMax < c.KMin {
		return errors.Newf("invalid k range [%d, %d]", c.KMin, c.KMax)
	}
	for _, l := range c.Linkages {
		if _, err := mixclust.ParseLinkage(l); err != nil {
			return errors.Wrap(err, "linkages")
		}
	}
	if c.Eps < 0 {
		return errors.Newf("eps must be >= 0, got %g", c.Eps)
	}
	if c.MinPts < 1 {
		return errors.Newf("min_pts must be >= 1, got %d", c.MinPts)
	}
	if c.KNN < 0 {
		return errors.Newf("knn_k must be >= 0, got %d", c.KNN)
	}
	if _, err := viz.ParseFormat(c.Format); err != nil {
		return errors.Wrap(err, "format")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("plot size must be positive, got %gx%g", c.Width, c.Height)
	}
	return nil
}

// GenerateConfig converts the synthetic-data settings.
func (c Config) GenerateConfig() mixclust.GenerateConfig {
	groups := make([]mixclust.GroupParams, len(c.Groups))
	for i, g := range c.Groups {
		groups[i] = mixclust.GroupParams{Mean: g.Mean, SD: g.SD, BinaryP: g.BinaryP, OrdinalP: g.OrdinalP}
	}
	return mixclust.GenerateConfig{
		GroupSize:     c.GroupSize,
		Groups:        groups,
		OrdinalTrials: c.OrdinalTrials,
		Seed:          c.Seed,
	}
}

// DissimilarityConfig converts the dissimilarity settings.
func (c Config) DissimilarityConfig() mixclust.DissimilarityConfig {
	return mixclust.DissimilarityConfig{
		Metric:      mixclust.Metric(c.Metric),
		Weights:     c.Weights,
		Standardize: c.Standardize,
		Workers:     c.Workers,
	}
}

// DBSCANConfig converts the DBSCAN settings.
func (c Config) DBSCANConfig() mixclust.DBSCANConfig {
	return mixclust.DBSCANConfig{Eps: c.Eps, MinPts: c.MinPts, BorderPoints: c.BorderPoints}
}

// KNNK returns the k used for the kNN-distance plot.
func (c Config) KNNK() int {
	if c.KNN > 0 {
		return c.KNN
	}
	return max(c.MinPts-1, 1)
}

// ReadOptions builds the input reader options.
func (c Config) ReadOptions() (mixclust.ReadOptions, error) {
	opts := mixclust.ReadOptions{Comma: []rune(c.Delimiter)[0], GroupColumn: c.GroupColumn}
	if c.Types != "" {
		kinds, err := mixclust.ParseKinds(c.Types)
		if err != nil {
			return opts, errors.Wrap(err, "types")
		}
		opts.Kinds = kinds
	}
	return opts, nil
}
