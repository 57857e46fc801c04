package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PipeLoad/internal/model"
	"github.com/piwi3910/PipeLoad/internal/project"
)

// showSettingsDialog displays the application preferences editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	containerSelect := widget.NewSelect(model.ContainerPresetNames(), func(selected string) {
		cfg.DefaultContainerPreset = selected
	})
	containerSelect.SetSelected(cfg.DefaultContainerPreset)

	fastPath := widget.NewCheck("", func(b bool) { cfg.DefaultGridFastPath = b })
	fastPath.Checked = cfg.DefaultGridFastPath

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Min Space (cm)", floatEntry(&cfg.DefaultMinSpace)),
		widget.NewFormItem("Default Nesting Allowance (cm)", floatEntry(&cfg.DefaultAllowance)),
		widget.NewFormItem("Default Price per Container", floatEntry(&cfg.DefaultPrice)),
		widget.NewFormItem("Default Container", containerSelect),
		widget.NewFormItem("Default Grid Fast Path", fastPath),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.DefaultMinSpace < 0 || cfg.DefaultAllowance < 0 || cfg.DefaultPrice < 0 {
				dialog.ShowError(fmt.Errorf("default values must not be negative"), a.window)
				return
			}
			a.config = cfg
			a.fyneApp.Settings().SetTheme(ForName(cfg.Theme))
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save preferences: %w", err), a.window)
			} else {
				dialog.ShowInformation("Preferences Saved", "Preferences apply to new projects.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 450))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.inventory, a.templates); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("pipeload-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your preferences, pipe catalog and job templates.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.inventory = backup.Inventory
					a.templates = backup.Templates
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported preferences: %w", err), a.window)
						return
					}
					a.saveInventory()
					if err := project.SaveDefaultTemplates(a.templates); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported templates: %w", err), a.window)
						return
					}
					a.fyneApp.Settings().SetTheme(ForName(a.config.Theme))
					a.SetupMenus()
					a.tabs.Items[tabContainer].Content = a.buildContainerPanel()
					a.tabs.Refresh()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export preferences, the pipe catalog and job templates to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current preferences to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
