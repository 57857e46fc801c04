package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PipeLoad/internal/model"
	"github.com/piwi3910/PipeLoad/internal/project"
)

// ─── Pipe Catalog Dialog ───────────────────────────────────

func (a *App) showPipeCatalogDialog() {
	pipeList := container.NewVBox()
	containerList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		pipeList.RemoveAll()
		containerList.RemoveAll()

		if len(a.inventory.Pipes) == 0 {
			pipeList.Add(widget.NewLabel("No pipe presets defined."))
		} else {
			pipeList.Add(container.NewGridWithColumns(7,
				widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabelWithStyle("OD / ID", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabelWithStyle("Length", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabelWithStyle("kg/m", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(""),
				widget.NewLabel(""),
			))
			pipeList.Add(widget.NewSeparator())
		}

		for i := range a.inventory.Pipes {
			idx := i
			p := a.inventory.Pipes[idx]
			pipeList.Add(container.NewGridWithColumns(7,
				widget.NewLabel(p.Name),
				widget.NewLabel(p.Material),
				widget.NewLabel(fmt.Sprintf("%.2f / %.2f cm", p.ExternalDiameter, p.InternalDiameter)),
				widget.NewLabel(fmt.Sprintf("%.0f cm", p.Length)),
				widget.NewLabel(fmt.Sprintf("%.2f", p.WeightPerMeter)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPipePresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Pipes = append(a.inventory.Pipes[:idx], a.inventory.Pipes[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			))
		}

		if len(a.inventory.Containers) == 0 {
			containerList.Add(widget.NewLabel("No custom containers. Use 'Save to Catalog' on the Container tab."))
			return
		}
		for i := range a.inventory.Containers {
			idx := i
			c := a.inventory.Containers[idx]
			containerList.Add(container.NewGridWithColumns(3,
				widget.NewLabel(c.Name),
				widget.NewLabel(fmt.Sprintf("%.0f x %.0f x %.0f cm, %s",
					c.Width, c.Height, c.Length, capacityLabel(c.WeightCapacity))),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Containers = append(a.inventory.Containers[:idx], a.inventory.Containers[idx+1:]...)
					a.saveInventory()
					refreshList()
					a.tabs.Items[tabContainer].Content = a.buildContainerPanel()
					a.tabs.Refresh()
				}),
			))
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Pipe Preset", theme.ContentAddIcon(), func() {
		a.showPipePresetDialog(-1, refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	tabs := container.NewAppTabs(
		container.NewTabItem("Pipes", container.NewVScroll(pipeList)),
		container.NewTabItem("Containers", container.NewVScroll(containerList)),
	)

	d := dialog.NewCustom("Pipe Catalog", "Close", container.NewBorder(toolbar, nil, nil, nil, tabs), a.window)
	d.Resize(fyne.NewSize(800, 520))
	d.Show()
}

func capacityLabel(kg float64) string {
	if kg <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%.0f kg", kg)
}

// showPipePresetDialog edits the preset at idx, or adds a new one when idx is negative.
func (a *App) showPipePresetDialog(idx int, onDone func()) {
	preset := model.NewPipePreset("New Pipe", "PE", 0, 0, 1200, 0)
	title, confirm := "Add Pipe Preset", "Add"
	if idx >= 0 {
		preset = a.inventory.Pipes[idx]
		title, confirm = "Edit Pipe Preset", "Save"
	}

	// The pipe form carries every preset dimension; quantity stays hidden.
	form := newPipeForm(preset.ToPipe(1))
	materialEntry := widget.NewEntry()
	materialEntry.SetText(preset.Material)

	items := form.items()
	items[0].Text = "Name"
	items = append(items[:4], items[5], widget.NewFormItem("Material", materialEntry))

	d := dialog.NewForm(title, confirm, "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			p := preset.ToPipe(1)
			if err := form.apply(&p); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			preset.Name = p.Label
			preset.Material = strings.TrimSpace(materialEntry.Text)
			preset.ExternalDiameter = p.ExternalDiameter
			preset.InternalDiameter = p.InternalDiameter
			preset.Length = p.Length
			preset.WeightPerMeter = p.WeightPerMeter
			if idx >= 0 {
				a.inventory.Pipes[idx] = preset
			} else {
				a.inventory.Pipes = append(a.inventory.Pipes, preset)
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 420))
	d.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Catalog now contains %d pipe presets and %d custom containers.",
				len(a.inventory.Pipes), len(a.inventory.Containers)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Catalog exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("pipe-catalog.json")
	d.Show()
}

// ─── Catalog Integration Helpers ───────────────────────────

// saveInventory persists the current catalog to disk.
func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
	}
}

// showAddPipeFromCatalog shows a picker that adds a catalog pipe to the order.
func (a *App) showAddPipeFromCatalog() {
	if len(a.inventory.Pipes) == 0 {
		dialog.ShowInformation("No Presets",
			"No pipe presets defined. Use Admin > Pipe Catalog to add presets.",
			a.window)
		return
	}

	names := a.inventory.PipeNames()
	pipeSelect := widget.NewSelect(names, nil)
	pipeSelect.SetSelected(names[0])

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("100")

	form := dialog.NewForm("Add from Catalog", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Pipe Preset", pipeSelect),
			widget.NewFormItem("Quantity (m)", qtyEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			preset := a.inventory.FindPipeByName(pipeSelect.Selected)
			if preset == nil {
				return
			}
			qty, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(qtyEntry.Text), ",", "."), 64)
			if err != nil || qty <= 0 {
				dialog.ShowError(fmt.Errorf("quantity must be a positive number of metres"), a.window)
				return
			}
			a.pushHistory("Add Pipe from Catalog")
			a.project.Pipes = append(a.project.Pipes, preset.ToPipe(qty))
			a.invalidateResult()
			a.refreshPipesList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}
