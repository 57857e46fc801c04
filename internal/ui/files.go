package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/export"
	pipeimporter "github.com/piwi3910/PipeLoad/internal/importer"
	"github.com/piwi3910/PipeLoad/internal/model"
)

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	a.openFile([]string{".csv", ".txt"}, func(path string) {
		a.handleImportResult(path, pipeimporter.ImportCSV(path))
	})
}

func (a *App) importExcel() {
	a.openFile([]string{".xlsx"}, func(path string) {
		a.handleImportResult(path, pipeimporter.ImportExcel(path))
	})
}

// dxfUnits maps drawing units to the scale that converts them to cm.
var dxfUnits = []struct {
	name  string
	scale float64
}{
	{"Millimetres", 0.1},
	{"Centimetres", 1},
	{"Metres", 100},
	{"Inches", 2.54},
}

func (a *App) importDXF() {
	names := make([]string, len(dxfUnits))
	for i, u := range dxfUnits {
		names[i] = u.name
	}
	unitSelect := widget.NewSelect(names, nil)
	unitSelect.SetSelected(names[0])

	dialog.ShowForm("Import Profiles from DXF", "Choose File...", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Drawing Units", unitSelect)},
		func(ok bool) {
			if !ok {
				return
			}
			scale := 1.0
			for _, u := range dxfUnits {
				if u.name == unitSelect.Selected {
					scale = u.scale
				}
			}
			a.openFile([]string{".dxf"}, func(path string) {
				a.handleImportResult(path, pipeimporter.ImportDXF(path, scale))
			})
		},
		a.window,
	)
}

func (a *App) openFile(extensions []string, onPath func(path string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		onPath(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(extensions))
	d.Show()
}

func (a *App) handleImportResult(path string, result pipeimporter.ImportResult) {
	a.logger.Info("pipes imported",
		zap.String("path", path),
		zap.Int("pipes", len(result.Pipes)),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))

	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		a.logger.Warn("import warning", zap.String("path", path), zap.String("warning", w))
	}

	if len(result.Pipes) == 0 {
		return
	}

	a.pushHistory("Import Pipes")
	a.project.Pipes = append(a.project.Pipes, result.Pipes...)
	a.invalidateResult()
	a.refreshPipesList()

	msg := fmt.Sprintf("Successfully imported %d pipes.", len(result.Pipes))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	if len(result.Warnings) > 0 {
		msg += fmt.Sprintf("\n\n%d warnings: review the imported values before calculating.", len(result.Warnings))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Export Functions ───────────────────────────────────────

func (a *App) exportPDF() {
	a.exportFile("PDF report", ".pdf", func(path string) error {
		return export.ExportPDF(path, a.project)
	})
}

func (a *App) exportExcel() {
	a.exportFile("Excel workbook", ".xlsx", func(path string) error {
		return export.ExportExcel(path, a.project)
	})
}

func (a *App) exportDXF() {
	a.exportFile("DXF cross-section", ".dxf", func(path string) error {
		return export.ExportDXF(path, a.project)
	})
}

func (a *App) exportLabels() {
	a.exportFile("load labels", "_labels.pdf", func(path string) error {
		return export.ExportLabels(path, a.project)
	})
}

// exportFile asks for a destination and runs write on it. Exports need a
// current result.
func (a *App) exportFile(what, suffix string, write func(path string) error) {
	if a.project.Result == nil {
		dialog.ShowInformation("No results", "Run Calculate first before exporting.", a.window)
		return
	}
	proj := a.project
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			a.logger.Error("export failed", zap.String("kind", what), zap.String("path", path), zap.Error(err))
			dialog.ShowError(fmt.Errorf("failed to export %s: %w", what, err), a.window)
			return
		}
		a.logger.Info("exported", zap.String("kind", what), zap.String("path", path))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved %s to %s", what, path), a.window)
	}, a.window)
	d.SetFileName(exportFileName(proj, suffix))
	d.Show()
}

// exportFileName derives a file name from the project name.
func exportFileName(proj model.Project, suffix string) string {
	name := strings.TrimSpace(proj.Name)
	if name == "" {
		name = "pipeload"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "_") + suffix
}
