package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/engine"
	"github.com/piwi3910/PipeLoad/internal/export"
	"github.com/piwi3910/PipeLoad/internal/model"
)

var (
	calcJob    jobFlags
	pdfPath    string
	xlsxPath   string
	dxfPath    string
	labelsPath string
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the containers needed for an order",
	Long: `Resolve telescoping, pack one container cross-section and count the
containers needed for the whole order.

Examples:
  pipeload calculate --config job.yaml
  pipeload calculate --pipes order.csv --container "20ft Standard"
  pipeload calculate --config job.yaml --pdf report.pdf --labels labels.pdf`,
	Args: cobra.NoArgs,
	RunE: runCalculate,
}

func init() {
	calcJob.register(calculateCmd)
	calculateCmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF report")
	calculateCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an Excel workbook")
	calculateCmd.Flags().StringVar(&dxfPath, "dxf", "", "write a DXF cross-section drawing")
	calculateCmd.Flags().StringVar(&labelsPath, "labels", "", "write QR load labels as PDF")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	job, err := calcJob.loadJob(cmd)
	if err != nil {
		return err
	}

	calc := engine.New(job.Settings, engine.WithLogger(logger))
	result := calc.Calculate(job.Pipes, job.Container)
	logger.Info("calculation finished",
		zap.Int("containers", result.Plan.TotalContainers),
		zap.String("limiting", string(result.Plan.LimitingFactor)),
		zap.Bool("infeasible", result.Plan.Infeasible))

	proj := model.Project{
		Name:      job.Name,
		Pipes:     job.Pipes,
		Container: job.Container,
		Settings:  job.Settings,
		Result:    &result,
	}
	if err := writeExports(proj); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return writeJSON(out, result)
	}
	_, err = io.WriteString(out, formatPlanHuman(proj))
	return err
}

// writeExports writes every report requested by flag.
func writeExports(proj model.Project) error {
	exports := []struct {
		path  string
		what  string
		write func(string, model.Project) error
	}{
		{pdfPath, "PDF report", export.ExportPDF},
		{xlsxPath, "Excel workbook", export.ExportExcel},
		{dxfPath, "DXF drawing", export.ExportDXF},
		{labelsPath, "load labels", export.ExportLabels},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path, proj); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.what, err)
		}
		logger.Info("export written", zap.String("kind", e.what), zap.String("path", e.path))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatPlanHuman renders the result of a calculated project as text.
func formatPlanHuman(proj model.Project) string {
	var b strings.Builder
	result := proj.Result
	plan := result.Plan
	c := proj.Container

	fmt.Fprintf(&b, "%s\n", proj.Name)
	fmt.Fprintf(&b, "Container: %s (%.0f x %.0f x %.0f cm, %s)\n\n",
		c.Label, c.Width, c.Height, c.Length, capacityText(c.WeightCapacity))

	if plan.Infeasible {
		fmt.Fprintf(&b, "Order cannot be loaded into %s\n", c.Label)
		if result.Failure != "" {
			fmt.Fprintf(&b, "  %s\n", result.Failure)
		}
		for _, id := range plan.InfeasibleIDs {
			if p := proj.FindPipe(id); p != nil {
				fmt.Fprintf(&b, "  does not fit: %s\n", p.Label)
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Containers needed: %d (limited by %s)\n", plan.TotalContainers, plan.LimitingFactor)
	fmt.Fprintf(&b, "  by space:  %d\n", plan.PackingContainers)
	fmt.Fprintf(&b, "  by weight: %d\n", plan.WeightContainers)
	fmt.Fprintf(&b, "Pieces: %d, total weight %.0f kg\n", plan.TotalPieces, plan.TotalWeight)
	if result.Estimate.EstimatedCost > 0 {
		fmt.Fprintf(&b, "Estimated freight: %.2f\n", result.Estimate.EstimatedCost)
	}

	b.WriteString("\nTelescoping:\n")
	for _, r := range result.Resolutions {
		p := proj.FindPipe(r.PipeID)
		if p == nil {
			continue
		}
		switch {
		case r.NestedIn != "":
			host := r.NestedIn
			if h := proj.FindPipe(r.NestedIn); h != nil {
				host = h.Label
			}
			fmt.Fprintf(&b, "  %s: nested in %s (%s)\n", p.Label, host, r.Telescoping)
		case len(r.NestedWith) > 0:
			fmt.Fprintf(&b, "  %s: carries %d pipe(s)\n", p.Label, len(r.NestedWith))
		default:
			fmt.Fprintf(&b, "  %s: standalone\n", p.Label)
		}
	}

	b.WriteString("\nContainers:\n")
	for _, load := range plan.Containers {
		items := make([]string, 0, len(load.Entries))
		for _, e := range load.Entries {
			item := fmt.Sprintf("%s x%d", e.Label, e.Count)
			if e.Nested {
				item += " (nested)"
			}
			items = append(items, item)
		}
		fmt.Fprintf(&b, "  #%d: %s | %d pcs, %.0f kg\n", load.Index+1, strings.Join(items, ", "), load.Pieces(), load.Weight)
	}
	return b.String()
}

func capacityText(kg float64) string {
	if kg <= 0 {
		return "unlimited payload"
	}
	return fmt.Sprintf("%.0f kg payload", kg)
}
