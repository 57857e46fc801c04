// Package export writes calculation results to PDF reports, QR load labels,
// Excel workbooks and DXF drawings. Every exporter renders the project's one
// container plan; none of them recomputes an allocation.
package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// ErrNoResult is returned when a project has not been calculated yet.
var ErrNoResult = errors.New("project has no calculation result")

// pipeColor represents an RGB color for a packing template.
type pipeColor struct {
	R, G, B int
}

// pipeColors mirrors the color scheme used in the UI cross-section widget.
var pipeColors = []pipeColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// resultOf returns the project's result or ErrNoResult.
func resultOf(proj model.Project) (model.CalculationResult, error) {
	if proj.Result == nil {
		return model.CalculationResult{}, ErrNoResult
	}
	return *proj.Result, nil
}

// templateColors assigns each template a palette entry in template order.
func templateColors(result model.CalculationResult) map[string]pipeColor {
	colors := make(map[string]pipeColor, len(result.Templates))
	for i, t := range result.Templates {
		colors[t.ID] = pipeColors[i%len(pipeColors)]
	}
	return colors
}

// ExportPDF generates a PDF report of a calculated project: a summary page,
// the cross-section of one fully loaded container and the per-container
// loading table.
func ExportPDF(path string, proj model.Project) error {
	result, err := resultOf(proj)
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, proj, result)

	pdf.AddPage()
	renderCrossSectionPage(pdf, proj, result)

	renderBreakdownPages(pdf, proj, result)

	return pdf.OutputFileAndClose(path)
}

// renderSummaryPage draws totals, the pipe table and the settings.
func renderSummaryPage(pdf *fpdf.Fpdf, proj model.Project, result model.CalculationResult) {
	plan := result.Plan

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Loading Plan: "+proj.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	if plan.Infeasible {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.CellFormat(250, 7, tr("WARNING: order cannot be loaded into "+proj.Container.Label+": "+strings.Join(pipeLabels(proj, plan.InfeasibleIDs), ", ")), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 10
	}

	summaryItems := []struct {
		label string
		value string
	}{
		{"Container", fmt.Sprintf("%s (%.0f x %.0f x %.0f cm)", proj.Container.Label, proj.Container.Width, proj.Container.Height, proj.Container.Length)},
		{"Containers Needed", fmt.Sprintf("%d", plan.TotalContainers)},
		{"By Packing / By Weight", fmt.Sprintf("%d / %d", plan.PackingContainers, plan.WeightContainers)},
		{"Limiting Factor", string(plan.LimitingFactor)},
		{"Total Pieces", fmt.Sprintf("%d", plan.TotalPieces)},
		{"Total Weight", fmt.Sprintf("%.1f kg", plan.TotalWeight)},
		{"Volume Utilization", fmt.Sprintf("%.1f%%", result.Estimate.VolumeUtilization)},
	}
	if result.Estimate.EstimatedCost > 0 {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Estimated Freight", fmt.Sprintf("%.2f", result.Estimate.EstimatedCost)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pipes", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{55, 30, 25, 25, 25, 25, 40, 42}
	headers := []string{"Pipe", "OD / ID (cm)", "Length", "Qty (m)", "Pieces", "kg/m", "Telescoping", "Nested In"}
	y = tableHeader(pdf, y, colWidths, headers)

	resolutions := make(map[string]model.PipeResolution, len(result.Resolutions))
	for _, r := range result.Resolutions {
		resolutions[r.PipeID] = r
	}

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range proj.Pipes {
		if y > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = tableHeader(pdf, marginTop, colWidths, headers)
			pdf.SetFont("Helvetica", "", 9)
		}
		res := resolutions[p.ID]
		nestedIn := "-"
		if res.NestedIn != "" {
			nestedIn = strings.Join(pipeLabels(proj, []string{res.NestedIn}), "")
		}
		tableRow(pdf, y, i, colWidths, []string{
			p.Label,
			fmt.Sprintf("%.1f / %.1f", p.ExternalDiameter, p.InternalDiameter),
			fmt.Sprintf("%.0f cm", p.Length),
			fmt.Sprintf("%.1f", p.QuantityMeters),
			fmt.Sprintf("%d", p.PieceCount()),
			fmt.Sprintf("%.2f", p.WeightPerMeter),
			res.Telescoping.String(),
			nestedIn,
		})
		y += rowHeight
	}

	y += 8
	if y < pageHeight-marginBottom-30 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
		y += 9

		pdf.SetFont("Helvetica", "", 9)
		for _, item := range []struct{ label, value string }{
			{"Min Space", fmt.Sprintf("%.2f cm", proj.Settings.MinSpace)},
			{"Nesting Allowance", fmt.Sprintf("%.2f cm", proj.Settings.Allowance)},
			{"Weight Capacity", weightCapacityText(proj.Container.WeightCapacity)},
		} {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	drawFooter(pdf)
}

// renderCrossSectionPage draws the single-container layout to scale. The
// layout's y axis grows upward from the floor, the page's grows downward.
func renderCrossSectionPage(pdf *fpdf.Fpdf, proj model.Project, result model.CalculationResult) {
	c := proj.Container
	layout := result.Layout

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cross-Section: %s (%.0f x %.0f cm)", c.Label, c.Width, c.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Columns: %d | Fill: %.1f%% | Column weight: %.0f kg", layout.Placed(), layout.FillRatio(c.CrossSection())*100, layout.TotalWeight)
	if layout.WeightCapacityExceeded {
		stats += " | weight capacity reached"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if !c.CrossSection().Valid() {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/c.Width, drawHeight/c.Height)
	canvasW := c.Width * scale
	canvasH := c.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	colors := templateColors(result)
	pdf.SetLineWidth(0.2)
	for _, circle := range layout.Circles {
		col := colors[circle.TemplateID]
		x, y := toPage(circle.X, circle.Y, scale, offsetX, offsetY, canvasH)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Circle(x, y, circle.Radius*scale, "FD")

		// Nested members as inner rings
		if t := result.TemplateByID(circle.TemplateID); t != nil && t.Nested() {
			pdf.SetFillColor(255, 255, 255)
			for _, id := range t.Members[1:] {
				if p := proj.FindPipe(id); p != nil {
					pdf.Circle(x, y, p.ExternalDiameter/2*scale, "D")
				}
			}
		}
	}

	drawDimensionAnnotations(pdf, c, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, result, colors, offsetY+canvasH+6)
	drawFooter(pdf)
}

// toPage maps a layout point (y up from the floor) to page coordinates (y down).
func toPage(x, y, scale, offsetX, offsetY, canvasH float64) (float64, float64) {
	return offsetX + x*scale, offsetY + canvasH - y*scale
}

// renderBreakdownPages lists every container of the plan.
func renderBreakdownPages(pdf *fpdf.Fpdf, proj model.Project, result model.CalculationResult) {
	colWidths := []float64{25, 167, 35, 40}
	headers := []string{"Container", "Contents", "Pieces", "Weight"}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, fmt.Sprintf("Container Breakdown (%d)", result.Plan.TotalContainers), "", 0, "L", false, 0, "")
	y := tableHeader(pdf, marginTop+headerHeight+3, colWidths, headers)

	pdf.SetFont("Helvetica", "", 9)
	for i, load := range result.Plan.Containers {
		if y > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = tableHeader(pdf, marginTop, colWidths, headers)
			pdf.SetFont("Helvetica", "", 9)
		}
		tableRow(pdf, y, i, colWidths, []string{
			fmt.Sprintf("%d", load.Index+1),
			truncate(pdf, entriesText(load.Entries), colWidths[1]-2),
			fmt.Sprintf("%d", load.Pieces()),
			fmt.Sprintf("%.1f kg", load.Weight),
		})
		y += rowHeight
	}
	drawFooter(pdf)
}

// entriesText summarises a container's entries on one line.
func entriesText(entries []model.LoadEntry) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s x%d", e.Label, e.Count)
		if e.Nested {
			parts[i] += " (nested)"
		}
	}
	return strings.Join(parts, ", ")
}

func tableHeader(pdf *fpdf.Fpdf, y float64, colWidths []float64, headers []string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	return y + rowHeight
}

func tableRow(pdf *fpdf.Fpdf, y float64, index int, colWidths []float64, cells []string) {
	// Core fonts are cp1252; labels like "PE Ø110" are UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if index%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], rowHeight, tr(cell), "1", 0, "C", true, 0, "")
		xPos += colWidths[j]
	}
}

// drawDimensionAnnotations adds width and height labels outside the container outline.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, c model.Container, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f cm", c.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f cm", c.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders a compact legend of template colors below the drawing.
func drawLegend(pdf *fpdf.Fpdf, result model.CalculationResult, colors map[string]pipeColor, startY float64) {
	if len(result.Templates) == 0 {
		return
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft
	maxX := pageWidth - marginRight

	for _, t := range result.Templates {
		col := colors[t.ID]
		label := fmt.Sprintf("%s (%.1f cm) x%d", t.Label, t.Diameter, result.Layout.Counts[t.ID])
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, tr(label), "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func drawFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PipeLoad - Pipe Container Loading Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func pipeLabels(proj model.Project, ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if p := proj.FindPipe(id); p != nil {
			labels = append(labels, p.Label)
		} else {
			labels = append(labels, id)
		}
	}
	return labels
}

func weightCapacityText(capacity float64) string {
	if capacity <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%.0f kg", capacity)
}
