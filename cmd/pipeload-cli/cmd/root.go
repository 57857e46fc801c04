// Package cmd provides the CLI commands for pipeload.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/logging"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool
	logJSON    bool

	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pipeload",
	Short: "Plan how pipe orders are loaded into containers",
	Long: `pipeload works out how many containers an order of pipes needs.

Smaller pipes are telescoped into the bores of larger ones, the resulting
columns are packed into the container cross-section, and the container
count is derived from both space and payload.

Environment Variables:
  PIPELOAD_CONTAINER   Container preset name
  PIPELOAD_MIN_SPACE   Clearance between pipes, cm
  PIPELOAD_ALLOWANCE   Nesting clearance, cm
  PIPELOAD_LOG_LEVEL   debug, info, warn or error

Examples:
  pipeload calculate --config job.yaml
  pipeload calculate --pipes order.csv --container "40ft High Cube" --pdf report.pdf
  pipeload compare --pipes order.xlsx --json`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML job file with pipes, container and settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(containersCmd)
	rootCmd.AddCommand(versionCmd)
}

// initLogger builds the logger for level, raised to debug by --verbose.
func initLogger(level string) error {
	if verbose {
		level = "debug"
	}
	l, err := logging.New(level, logJSON)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
