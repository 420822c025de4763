// Package cli implements the mixclust command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Every
// command accepts --verbose (-v) for debug-level logging.
//
// # Commands
//
//   - run: generate or load data, cluster it and write plots and a report
//   - generate: write the synthetic dataset as delimited text
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is reported by --version. Set it with -ldflags at build time.
var Version = "dev"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command output that is not logging (tables, data).
	Out io.Writer
}

// New creates a CLI that logs to logw at level and prints results to out.
func New(logw, out io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(logw, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Out: out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mixclust",
		Short:        "Cluster mixed-type data with Gower dissimilarity",
		Long:         `mixclust computes Gower dissimilarities for continuous, binary and ordinal data and compares medoid, hierarchical and DBSCAN clusterings, with plots to help choose their parameters.`,
		Version:      Version,
		SilenceUsage: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return nil
	}

	root.AddCommand(c.runCommand())
	root.AddCommand(c.generateCommand())
	return root
}
