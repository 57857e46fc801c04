package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PipeLoad/internal/engine"
	"github.com/piwi3910/PipeLoad/internal/model"
)

// showAdvancedSettingsDialog opens a dialog with the packing loop settings
// that are not shown on the Settings tab, plus a capacity check for a
// single diameter in the current container.
func (a *App) showAdvancedSettingsDialog() {
	s := a.project.Settings

	roundsEntry := widget.NewEntry()
	roundsEntry.SetText(strconv.Itoa(s.Rounds()))

	fastPath := widget.NewCheck("", func(b bool) { s.GridFastPath = b })
	fastPath.Checked = s.GridFastPath

	loopSection := widget.NewCard("Packing Loop",
		"Upper bound on placement rounds per cross-section",
		container.NewGridWithColumns(2,
			widget.NewLabel("Max Rounds"), roundsEntry,
			widget.NewLabel("Grid Fast Path (min space 0)"), fastPath,
		))

	// Capacity check
	diameterEntry := widget.NewEntry()
	diameterEntry.SetPlaceHolder("Diameter in cm")
	capacityResult := widget.NewLabel("")
	checkBtn := widget.NewButtonWithIcon("Check", theme.SearchIcon(), func() {
		values, err := parseFields(field{"diameter", diameterEntry.Text})
		if err != nil {
			capacityResult.SetText(err.Error())
			return
		}
		if values[0] <= 0 {
			capacityResult.SetText("Enter a diameter greater than 0")
			return
		}
		capacityResult.SetText(capacityText(s, a.project.Container, values[0]))
	})

	capacitySection := widget.NewCard("Cross-Section Capacity",
		"How many pipes of one diameter fit side by side in the current container",
		container.NewVBox(
			container.NewBorder(nil, nil, nil, checkBtn, diameterEntry),
			capacityResult,
		))

	d := dialog.NewCustomConfirm("Advanced Settings", "Save", "Cancel",
		container.NewVScroll(container.NewVBox(loopSection, capacitySection)),
		func(ok bool) {
			if !ok {
				return
			}
			rounds, err := strconv.Atoi(roundsEntry.Text)
			if err != nil || rounds <= 0 {
				dialog.ShowError(fmt.Errorf("max rounds must be a positive whole number"), a.window)
				return
			}
			s.MaxRounds = rounds
			a.pushHistory("Change Advanced Settings")
			a.project.Settings = s
			a.invalidateResult()
			a.tabs.Items[tabSettings].Content = a.buildSettingsPanel()
			a.tabs.Refresh()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
}

// capacityText reports the cross-section capacity for diameter d.
func capacityText(s model.Settings, c model.Container, d float64) string {
	n := engine.New(s).CrossSectionCapacity(d, c.CrossSection())
	if n == 0 {
		return fmt.Sprintf("Ø%.1f cm does not fit in %s", d, c.Label)
	}
	return fmt.Sprintf("%d x Ø%.1f cm per cross-section of %s", n, d, c.Label)
}
