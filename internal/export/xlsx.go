package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// Workbook sheet names.
const (
	SheetPipes     = "Pipes"
	SheetTemplates = "Templates"
	SheetPlan      = "Plan"
	SheetLayout    = "Layout"
)

// ExportExcel writes a calculated project to an .xlsx workbook with one
// sheet each for the order, the packing templates, the container plan and
// the single-container cross-section layout.
func ExportExcel(path string, proj model.Project) error {
	result, err := resultOf(proj)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetPipes); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetTemplates, SheetPlan, SheetLayout} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetPipes, pipeRows(proj, result)},
		{SheetTemplates, templateRows(result)},
		{SheetPlan, planRows(proj, result)},
		{SheetLayout, layoutRows(result)},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRows fills a sheet from row 1, styling the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(rows[0]))
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func pipeRows(proj model.Project, result model.CalculationResult) [][]interface{} {
	resolutions := make(map[string]model.PipeResolution, len(result.Resolutions))
	for _, r := range result.Resolutions {
		resolutions[r.PipeID] = r
	}

	rows := [][]interface{}{{
		"Pipe", "External (cm)", "Internal (cm)", "Length (cm)", "Quantity (m)",
		"Weight (kg/m)", "Pieces", "Unit Weight (kg)", "Telescoping", "Nested In",
	}}
	for _, p := range proj.Pipes {
		res := resolutions[p.ID]
		nestedIn := ""
		if res.NestedIn != "" {
			nestedIn = pipeLabels(proj, []string{res.NestedIn})[0]
		}
		rows = append(rows, []interface{}{
			p.Label, p.ExternalDiameter, p.InternalDiameter, p.Length, p.QuantityMeters,
			p.WeightPerMeter, p.PieceCount(), p.UnitWeight(), res.Telescoping.String(), nestedIn,
		})
	}
	return rows
}

func templateRows(result model.CalculationResult) [][]interface{} {
	rows := [][]interface{}{{"Template", "Diameter (cm)", "Length (cm)", "Weight (kg)", "Members", "Telescoping", "In Layout"}}
	for _, t := range result.Templates {
		rows = append(rows, []interface{}{
			t.Label, t.Diameter, t.Length, t.Weight, len(t.Members), t.Telescoping.String(), result.Layout.Counts[t.ID],
		})
	}
	return rows
}

func planRows(proj model.Project, result model.CalculationResult) [][]interface{} {
	plan := result.Plan
	rows := [][]interface{}{
		{"Container", "Pipe", "Count", "Nested", "Weight (kg)"},
	}
	for _, load := range plan.Containers {
		for _, e := range load.Entries {
			rows = append(rows, []interface{}{load.Index + 1, e.Label, e.Count, e.Nested, e.Weight})
		}
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Container Type", proj.Container.Label},
		[]interface{}{"Total Containers", plan.TotalContainers},
		[]interface{}{"By Packing", plan.PackingContainers},
		[]interface{}{"By Weight", plan.WeightContainers},
		[]interface{}{"Limiting Factor", string(plan.LimitingFactor)},
		[]interface{}{"Total Pieces", plan.TotalPieces},
		[]interface{}{"Total Weight (kg)", plan.TotalWeight},
		[]interface{}{"Estimated Cost", result.Estimate.EstimatedCost},
	)
	if plan.Infeasible {
		rows = append(rows, append([]interface{}{"Cannot Load"}, stringsToCells(pipeLabels(proj, plan.InfeasibleIDs))...))
	}
	return rows
}

func layoutRows(result model.CalculationResult) [][]interface{} {
	rows := [][]interface{}{{"#", "Template", "X (cm)", "Y (cm)", "Radius (cm)"}}
	for i, c := range result.Layout.Circles {
		label := c.TemplateID
		if t := result.TemplateByID(c.TemplateID); t != nil {
			label = t.Label
		}
		rows = append(rows, []interface{}{i + 1, label, c.X, c.Y, c.Radius})
	}
	return rows
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
