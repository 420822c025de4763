package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/mixclust"
	"github.com/TrevorS/mixclust/internal/config"
)

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestRun_Default(t *testing.T) {
	cfg := config.Default()
	res, err := quietRunner().Run(context.Background(), cfg)
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err, "RunID should be a UUID")
	assert.Equal(t, "synthetic", res.Source)
	assert.Equal(t, 45, res.Dataset.N())
	assert.Equal(t, 45, res.Dissimilarity.N())
	assert.Equal(t, 45*44/2, res.Summary.Pairs)

	require.NotNil(t, res.Selection)
	assert.GreaterOrEqual(t, res.Selection.K, 1)
	assert.LessOrEqual(t, res.Selection.K, 5)

	require.Len(t, res.Trees, 3)
	for i, name := range cfg.Linkages {
		assert.Equal(t, mixclust.Linkage(name), res.Trees[i].Linkage)
		assert.NoError(t, res.Trees[i].Validate())
	}

	require.NotNil(t, res.DBSCAN)
	assert.Len(t, res.DBSCAN.Labels, 45)
	assert.Equal(t, 4, res.KNNK)
	assert.Len(t, res.KNN, 45)
}

func TestRun_Deterministic(t *testing.T) {
	cfg := config.Default()
	a, err := quietRunner().Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := quietRunner().Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Selection.Best.Medoids, b.Selection.Best.Medoids)
	assert.Equal(t, a.DBSCAN.Labels, b.DBSCAN.Labels)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().Run(ctx, config.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MinPts = 0
	_, err := quietRunner().Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "invalid config")
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_InputFile(t *testing.T) {
	ds, err := mixclust.Generate(mixclust.DefaultGenerateConfig())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, mixclust.WriteDelimited(f, ds, ','))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.Input = path
	cfg.Types = "x=continuous,b=binary,o=ordinal"
	cfg.GroupColumn = "group"

	res, err := quietRunner().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, ds.Groups, res.Dataset.Groups)

	// The file holds the same data, so the matrix matches the synthetic run.
	synth, err := quietRunner().Run(context.Background(), config.Default())
	require.NoError(t, err)
	assert.Equal(t, synth.Dissimilarity.Flat(), res.Dissimilarity.Flat())
}

func TestRun_UndefinedPairs(t *testing.T) {
	cfg := config.Default()
	cfg.Input = writeInput(t, "x,b\n1,0\nNA,1\n2,NA\n")

	_, err := quietRunner().Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "comparable")
}

func TestRun_MissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Input = filepath.Join(t.TempDir(), "absent.csv")

	_, err := quietRunner().Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "open input")
}

func TestBuildReport(t *testing.T) {
	cfg := config.Default()
	res, err := quietRunner().Run(context.Background(), cfg)
	require.NoError(t, err)

	rep, err := BuildReport(res, cfg.Seed, cfg.Eps, cfg.MinPts)
	require.NoError(t, err)

	assert.Equal(t, res.RunID, rep.RunID)
	assert.Equal(t, cfg.Seed, rep.Seed)
	assert.Equal(t, 45, rep.Observations)
	assert.Equal(t, []Variable{{"x", "continuous"}, {"b", "symmetric"}, {"o", "ordinal"}}, rep.Variables)

	require.Len(t, rep.Medoids.Scores, 5)
	assert.True(t, rep.Medoids.Scores[0].Feasible)
	assert.Equal(t, 0.0, rep.Medoids.Scores[0].AvgSilhouette)
	require.NotNil(t, rep.Medoids.ARI)

	require.Len(t, rep.Hierarchical, len(cfg.Linkages))
	for _, tr := range rep.Hierarchical {
		assert.Equal(t, rep.Medoids.K, tr.CutK)
		assert.Len(t, tr.CutLabels, 45)
		assert.Len(t, tr.Merges, 44)
		assert.NotNil(t, tr.ARI)
	}

	assert.InDelta(t, 0.3, rep.DBSCAN.Eps, 1e-12)
	assert.Equal(t, res.DBSCAN.NumNoise, rep.DBSCAN.Noise)
	assert.NotNil(t, rep.DBSCAN.ARI)
}

func TestBuildReport_NoGroups(t *testing.T) {
	cfg := config.Default()
	res, err := quietRunner().Run(context.Background(), cfg)
	require.NoError(t, err)
	res.Dataset.Groups = nil
	res.Source = "data.csv"

	rep, err := BuildReport(res, cfg.Seed, cfg.Eps, cfg.MinPts)
	require.NoError(t, err)
	assert.Nil(t, rep.Medoids.ARI)
	assert.Nil(t, rep.DBSCAN.ARI)
	assert.Zero(t, rep.Seed)
}

func TestWriteArtifacts(t *testing.T) {
	cfg := config.Default()
	cfg.Linkages = []string{"single"}
	cfg.OutputDir = t.TempDir()

	r := quietRunner()
	res, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	rep, err := r.WriteArtifacts(context.Background(), res, cfg)
	require.NoError(t, err)

	want := []string{
		"dendrogram-single.svg",
		"tree-single.svg",
		"distance-density.svg",
		"distance-ecdf.svg",
		"knn-distance.svg",
		ReportFile,
	}
	if res.Selection.K >= 2 {
		want = append(want, "silhouette.svg")
	}
	for _, name := range want {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		if assert.NoError(t, err, name) {
			assert.Positive(t, info.Size(), name)
		}
	}

	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, ReportFile))
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
	assert.Len(t, decoded.Artifacts, len(want)-1, "the report lists every file but itself")
}

func TestWriteArtifacts_PDFTreeFallsBackToSVG(t *testing.T) {
	cfg := config.Default()
	cfg.Linkages = []string{"complete"}
	cfg.Format = "pdf"
	cfg.OutputDir = t.TempDir()

	r := quietRunner()
	res, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	_, err = r.WriteArtifacts(context.Background(), res, cfg)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "dendrogram-complete.pdf"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "tree-complete.svg"))
}

func TestWriteArtifacts_SingleObservation(t *testing.T) {
	cfg := config.Default()
	cfg.Input = writeInput(t, "x,b\n1,0\n")
	cfg.OutputDir = t.TempDir()

	r := quietRunner()
	res, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Selection.K)
	assert.Zero(t, res.Summary.Pairs)

	rep, err := r.WriteArtifacts(context.Background(), res, cfg)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, ReportFile))
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 1, decoded.Observations)
	assert.Equal(t, mixclust.DistanceSummary{}, decoded.Distances)
	assert.Equal(t, []int{0}, decoded.Medoids.Labels)

	// No pairs means no distance plots, but every tree is still drawn.
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "distance-density.svg"))
	for _, l := range cfg.Linkages {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "dendrogram-"+l+".svg"))
	}
	assert.Len(t, rep.Artifacts, 2*len(cfg.Linkages))
}

func TestWriteArtifacts_NoOutputDir(t *testing.T) {
	cfg := config.Default()
	r := quietRunner()
	res, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	rep, err := r.WriteArtifacts(context.Background(), res, cfg)
	require.NoError(t, err)
	assert.Empty(t, rep.Artifacts)
}
