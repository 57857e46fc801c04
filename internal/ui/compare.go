package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/engine"
)

var compareHeader = []string{"Scenario", "Container", "Containers", "Limited by", "Fill", "Cost"}

// showCompareDialog runs the default what-if scenarios for the current order
// in the background and shows them side by side.
func (a *App) showCompareDialog() {
	if len(a.project.Pipes) == 0 {
		dialog.ShowInformation("Nothing to Compare", "Add pipes to the order first.", a.window)
		return
	}

	pipes := copyPipes(a.project.Pipes)
	scenarios := engine.BuildDefaultScenarios(a.project.Settings, a.project.Container)
	progress := dialog.NewCustomWithoutButtons("Comparing Scenarios",
		widget.NewProgressBarInfinite(), a.window)
	progress.Show()

	go func() {
		results := engine.CompareScenarios(scenarios, pipes, engine.WithLogger(a.logger))
		a.logger.Info("scenario comparison finished", zap.Int("scenarios", len(results)))
		fyne.Do(func() {
			progress.Hide()
			a.showComparisonResults(results)
		})
	}()
}

func (a *App) showComparisonResults(results []engine.ComparisonResult) {
	rows := comparisonRows(results)
	grid := container.NewGridWithColumns(len(compareHeader))
	for _, h := range compareHeader {
		grid.Add(boldCell(h))
	}
	for _, row := range rows {
		for _, cell := range row {
			grid.Add(widget.NewLabel(cell))
		}
	}

	d := dialog.NewCustom("Scenario Comparison", "Close", container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(820, 360))
	d.Show()
}

func boldCell(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// comparisonRows formats one table row per scenario.
func comparisonRows(results []engine.ComparisonResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		containers := fmt.Sprintf("%d", r.Containers)
		limit := string(r.LimitingFactor)
		if r.Infeasible {
			containers, limit = "-", "does not fit"
		}
		cost := "-"
		if r.EstimatedCost > 0 {
			cost = fmt.Sprintf("%.2f", r.EstimatedCost)
		}
		rows = append(rows, []string{
			r.Scenario.Name,
			r.Scenario.Container.Label,
			containers,
			limit,
			fmt.Sprintf("%.0f%%", r.FillRatio*100),
			cost,
		})
	}
	return rows
}
