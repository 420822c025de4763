package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"

	"github.com/TrevorS/mixclust"
	"github.com/TrevorS/mixclust/internal/config"
	"github.com/TrevorS/mixclust/viz"
)

// ReportFile is the name of the JSON report inside the output directory.
const ReportFile = "report.json"

// WriteArtifacts renders every plot of res into cfg.OutputDir and writes the
// JSON report last, listing the files written. It returns the report.
func (r *Runner) WriteArtifacts(ctx context.Context, res *Result, cfg config.Config) (*Report, error) {
	rep, err := BuildReport(res, cfg.Seed, cfg.Eps, cfg.MinPts)
	if err != nil {
		return nil, errors.Wrap(err, "build report")
	}
	if cfg.OutputDir == "" {
		return rep, nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}

	format, err := viz.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	w := &artifactWriter{runner: r, dir: cfg.OutputDir}
	encode := func(name string, p *plot.Plot) error {
		var buf bytes.Buffer
		if err := viz.Encode(p, format, cfg.Width, cfg.Height, &buf); err != nil {
			return err
		}
		return w.write(fmt.Sprintf("%s.%s", name, format), buf.Bytes())
	}

	// Graphviz has no PDF renderer here; node-link trees fall back to SVG.
	treeFormat := format
	if treeFormat == viz.FormatPDF {
		treeFormat = viz.FormatSVG
	}

	for _, tree := range res.Trees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		title := fmt.Sprintf("%s linkage (n = %d)", tree.Linkage, tree.N)
		p, err := viz.Dendrogram(tree, nil, title)
		if err != nil {
			return nil, errors.Wrapf(err, "%s dendrogram", tree.Linkage)
		}
		if err := encode("dendrogram-"+string(tree.Linkage), p); err != nil {
			return nil, err
		}

		dot, err := viz.DendrogramDOT(tree, nil)
		if err != nil {
			return nil, err
		}
		img, err := viz.RenderDOT(ctx, dot, treeFormat)
		if err != nil {
			return nil, errors.Wrapf(err, "%s tree", tree.Linkage)
		}
		if err := w.write(fmt.Sprintf("tree-%s.%s", tree.Linkage, treeFormat), img); err != nil {
			return nil, err
		}
	}

	upper := res.Dissimilarity.UpperTriangle()
	if len(upper) > 0 {
		est, err := mixclust.Density(upper, mixclust.DefaultDensityConfig())
		if err != nil {
			return nil, err
		}
		p, err := viz.Density(est, cfg.Eps)
		if err != nil {
			return nil, err
		}
		if err := encode("distance-density", p); err != nil {
			return nil, err
		}

		p, err = viz.ECDF(mixclust.NewECDF(upper), cfg.Eps)
		if err != nil {
			return nil, err
		}
		if err := encode("distance-ecdf", p); err != nil {
			return nil, err
		}

		p, err = viz.KNNDistance(res.KNN, res.KNNK, cfg.Eps)
		if err != nil {
			return nil, err
		}
		if err := encode("knn-distance", p); err != nil {
			return nil, err
		}
	}

	if best := res.Selection.Best; best.K >= 2 {
		p, err := viz.Silhouette(best.Silhouette, best.Labels)
		if err != nil {
			return nil, err
		}
		if err := encode("silhouette", p); err != nil {
			return nil, err
		}
	}

	rep.Artifacts = w.artifacts
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode report")
	}
	if err := w.write(ReportFile, append(data, '\n')); err != nil {
		return nil, err
	}
	return rep, nil
}

type artifactWriter struct {
	runner    *Runner
	dir       string
	artifacts []Artifact
}

func (w *artifactWriter) write(name string, data []byte) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	w.artifacts = append(w.artifacts, Artifact{Name: name, Path: path, Bytes: len(data)})
	w.runner.logger.Debug("Wrote artifact", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}
