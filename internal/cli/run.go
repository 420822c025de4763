package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/TrevorS/mixclust/internal/config"
	"github.com/TrevorS/mixclust/internal/pipeline"
)

type runOpts struct {
	configPath string
	seed       uint64
	outputDir  string
	format     string
	input      string
	types      string
	group      string
	eps        float64
	minPts     int
	linkages   []string
	workers    int
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster a dataset and write plots and a report",
		Long: `Run generates the synthetic three-group dataset (or loads --input), computes
the Gower dissimilarity matrix and clusters it with PAM (k chosen by average
silhouette width), hierarchical clustering and DBSCAN.

With --out, dendrograms, distance density/ECDF plots, the kNN-distance plot
and a JSON report are written to that directory.`,
		Example: `  mixclust run --out plots
  mixclust run --config run.toml --eps 0.25
  mixclust run --input data.csv --types "age=continuous,smoker=binary,stage=ordinal"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runAnalysis(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed for the synthetic data")
	f.StringVarP(&opts.outputDir, "out", "o", "", "directory for plots and report.json")
	f.StringVarP(&opts.format, "format", "f", "", "plot format: svg, png or pdf")
	f.StringVarP(&opts.input, "input", "i", "", "delimited data file to cluster instead of synthetic data")
	f.StringVar(&opts.types, "types", "", `column kinds for --input, e.g. "x=continuous,b=binary,o=ordinal"`)
	f.StringVar(&opts.group, "group-column", "", "column of --input holding known group labels, compared against each clustering")
	f.Float64Var(&opts.eps, "eps", 0, "DBSCAN neighborhood radius")
	f.IntVar(&opts.minPts, "minpts", 0, "DBSCAN minimum neighborhood size")
	f.StringSliceVar(&opts.linkages, "linkage", nil, "hierarchical linkages (repeatable)")
	f.IntVar(&opts.workers, "workers", 0, "goroutines for dissimilarity computation (0 = all CPUs)")
	return cmd
}

// resolve loads the config file, if any, and applies explicitly set flags
// on top of it.
func (o *runOpts) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("out") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("input") {
		cfg.Input = o.input
	}
	if flags.Changed("types") {
		cfg.Types = o.types
	}
	if flags.Changed("group-column") {
		cfg.GroupColumn = o.group
	}
	if flags.Changed("eps") {
		cfg.Eps = o.eps
	}
	if flags.Changed("minpts") {
		cfg.MinPts = o.minPts
	}
	if flags.Changed("linkage") {
		cfg.Linkages = o.linkages
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid settings")
	}
	return cfg, nil
}

func (c *CLI) runAnalysis(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	runner := pipeline.NewRunner(c.Logger)

	res, err := runner.Run(ctx, cfg)
	if err != nil {
		return err
	}
	rep, err := runner.WriteArtifacts(ctx, res, cfg)
	if err != nil {
		return err
	}
	if cfg.OutputDir != "" {
		c.Logger.Info("Wrote artifacts", "dir", cfg.OutputDir, "files", len(rep.Artifacts)+1)
	}

	printSummary(c.Out, rep)
	return nil
}
