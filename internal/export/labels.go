package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// LabelItem is one pipe entry listed on a container label.
type LabelItem struct {
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Nested bool   `json:"nested,omitempty"`
}

// LabelInfo holds the data encoded into each container label's QR code.
type LabelInfo struct {
	Project        string      `json:"project"`
	Container      int         `json:"container"`
	Of             int         `json:"of"`
	ContainerLabel string      `json:"type"`
	Pieces         int         `json:"pieces"`
	Weight         float64     `json:"weight_kg"`
	Items          []LabelItem `json:"items"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per planned container.
// Each label names the container, its piece count and weight, and carries a
// QR code encoding the container's content as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, proj model.Project) error {
	result, err := resultOf(proj)
	if err != nil {
		return err
	}

	labels := CollectLabelInfos(proj.Name, proj.Container, result.Plan)
	if len(labels) == 0 {
		return fmt.Errorf("no containers planned to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for container %d: %w", label.Container, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_container_%d", info.Container)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Container %d/%d", info.Container, info.Of), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, tr(truncate(pdf, info.ContainerLabel, textW)), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d pcs | %.0f kg", info.Pieces, info.Weight), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, tr(truncate(pdf, itemsText(info.Items), textW)), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

func itemsText(items []LabelItem) string {
	entries := make([]model.LoadEntry, len(items))
	for i, it := range items {
		entries[i] = model.LoadEntry{Label: it.Label, Count: it.Count, Nested: it.Nested}
	}
	return entriesText(entries)
}

// CollectLabelInfos builds one label per container of a plan.
func CollectLabelInfos(projectName string, container model.Container, plan model.ContainerPlan) []LabelInfo {
	labels := make([]LabelInfo, 0, len(plan.Containers))
	for _, load := range plan.Containers {
		items := make([]LabelItem, len(load.Entries))
		for i, e := range load.Entries {
			items[i] = LabelItem{Label: e.Label, Count: e.Count, Nested: e.Nested}
		}
		labels = append(labels, LabelInfo{
			Project:        projectName,
			Container:      load.Index + 1,
			Of:             plan.TotalContainers,
			ContainerLabel: container.Label,
			Pieces:         load.Pieces(),
			Weight:         load.Weight,
			Items:          items,
		})
	}
	return labels
}
