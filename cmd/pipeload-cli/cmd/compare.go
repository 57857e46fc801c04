package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PipeLoad/internal/engine"
)

var compareJob jobFlags

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare what-if scenarios for an order",
	Long: `Run the order against the current settings, zero spacing, half the
nesting allowance and alternative container presets, side by side.

Examples:
  pipeload compare --config job.yaml
  pipeload compare --pipes order.csv --json`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	compareJob.register(compareCmd)
}

// scenarioSummary is the JSON shape of one compared scenario.
type scenarioSummary struct {
	Name           string  `json:"name"`
	Container      string  `json:"container"`
	Containers     int     `json:"containers"`
	LimitingFactor string  `json:"limiting_factor"`
	Infeasible     bool    `json:"infeasible"`
	FillRatio      float64 `json:"fill_ratio"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	job, err := compareJob.loadJob(cmd)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(job.Settings, job.Container)
	results := engine.CompareScenarios(scenarios, job.Pipes, engine.WithLogger(logger))

	summaries := summarize(results)
	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return writeJSON(out, summaries)
	}
	return formatCompareHuman(out, summaries)
}

func summarize(results []engine.ComparisonResult) []scenarioSummary {
	summaries := make([]scenarioSummary, len(results))
	for i, r := range results {
		summaries[i] = scenarioSummary{
			Name:           r.Scenario.Name,
			Container:      r.Scenario.Container.Label,
			Containers:     r.Containers,
			LimitingFactor: string(r.LimitingFactor),
			Infeasible:     r.Infeasible,
			FillRatio:      r.FillRatio,
			EstimatedCost:  r.EstimatedCost,
		}
	}
	return summaries
}

func formatCompareHuman(w io.Writer, summaries []scenarioSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tCONTAINER\tCONTAINERS\tLIMITED BY\tFILL\tCOST")
	for _, s := range summaries {
		containers, limit := fmt.Sprintf("%d", s.Containers), s.LimitingFactor
		if s.Infeasible {
			containers, limit = "-", "does not fit"
		}
		cost := "-"
		if s.EstimatedCost > 0 {
			cost = fmt.Sprintf("%.2f", s.EstimatedCost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			s.Name, s.Container, containers, limit, s.FillRatio*100, cost)
	}
	return tw.Flush()
}
