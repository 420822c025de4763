package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/mixclust"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, mixclust.DefaultSeed, cfg.Seed)
	assert.Equal(t, 15, cfg.GroupSize)
	assert.Len(t, cfg.Groups, 3)
	assert.Equal(t, "gower", cfg.Metric)
	assert.Equal(t, 1, cfg.KMin)
	assert.Equal(t, 5, cfg.KMax)
	assert.Equal(t, []string{"median", "single", "complete"}, cfg.Linkages)
	assert.InDelta(t, 0.3, cfg.Eps, 1e-12)
	assert.Equal(t, 5, cfg.MinPts)
	assert.True(t, cfg.BorderPoints)
	assert.Equal(t, "svg", cfg.Format)
}

func TestDefault_RoundTripsGenerateConfig(t *testing.T) {
	assert.Equal(t, mixclust.DefaultGenerateConfig(), Default().GenerateConfig())
}

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "demo.toml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 20, cfg.GroupSize)
	assert.Equal(t, []string{"average", "ward"}, cfg.Linkages)
	assert.InDelta(t, 0.25, cfg.Eps, 1e-12)
	assert.Equal(t, 4, cfg.MinPts)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "png", cfg.Format)
	require.Len(t, cfg.Groups, 2)
	assert.Equal(t, Group{Mean: 3, SD: 0.5, BinaryP: 0.9, OrdinalP: 0.9}, cfg.Groups[1])

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 5, cfg.OrdinalTrials)
	assert.Equal(t, "gower", cfg.Metric)
	assert.Equal(t, 720.0, cfg.Width)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "typo.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sed")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("eps = [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"group size": func(c *Config) { c.GroupSize = 0 },
		"no groups":  func(c *Config) { c.Groups = nil },
		"delimiter":  func(c *Config) { c.Delimiter = ";;" },
		"k range":    func(c *Config) { c.KMin, c.KMax = 3, 2 },
		"zero k":     func(c *Config) { c.KMin = 0 },
		"linkage":    func(c *Config) { c.Linkages = []string{"weighted"} },
		"eps":        func(c *Config) { c.Eps = -1 },
		"min pts":    func(c *Config) { c.MinPts = 0 },
		"knn":        func(c *Config) { c.KNN = -2 },
		"format":     func(c *Config) { c.Format = "gif" },
		"plot size":  func(c *Config) { c.Width = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_InputSkipsSyntheticChecks(t *testing.T) {
	cfg := Default()
	cfg.Input = "data.csv"
	cfg.Groups = nil
	cfg.GroupSize = 0
	assert.NoError(t, cfg.Validate())
}

func TestKNNK(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4, cfg.KNNK())

	cfg.KNN = 7
	assert.Equal(t, 7, cfg.KNNK())

	cfg.KNN, cfg.MinPts = 0, 1
	assert.Equal(t, 1, cfg.KNNK())
}

func TestConverters(t *testing.T) {
	cfg := Default()
	cfg.Weights = []float64{2, 1, 1}
	cfg.Workers = 3

	dc := cfg.DissimilarityConfig()
	assert.Equal(t, mixclust.MetricGower, dc.Metric)
	assert.Equal(t, []float64{2, 1, 1}, dc.Weights)
	assert.Equal(t, 3, dc.Workers)

	assert.Equal(t, mixclust.DefaultDBSCANConfig(), cfg.DBSCANConfig())
}

func TestReadOptions(t *testing.T) {
	cfg := Default()
	cfg.Delimiter = ";"
	cfg.Types = "x=continuous,b=binary"
	cfg.GroupColumn = "g"

	opts, err := cfg.ReadOptions()
	require.NoError(t, err)
	assert.Equal(t, ';', opts.Comma)
	assert.Equal(t, "g", opts.GroupColumn)
	assert.Equal(t, map[string]mixclust.VarKind{"x": mixclust.Continuous, "b": mixclust.SymmetricBinary}, opts.Kinds)

	cfg.Types = "x=interval"
	_, err = cfg.ReadOptions()
	assert.Error(t, err)
}
