package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/engine"
	"github.com/piwi3910/PipeLoad/internal/model"
	"github.com/piwi3910/PipeLoad/internal/project"
	"github.com/piwi3910/PipeLoad/internal/ui/widgets"
)

// Tab indexes.
const (
	tabPipes = iota
	tabContainer
	tabSettings
	tabResults
)

// App holds all application state and UI references.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  *zap.Logger

	project     model.Project
	projectPath string
	history     *History

	config        model.AppConfig
	inventory     model.Inventory
	inventoryPath string
	templates     model.TemplateStore

	tabs *container.AppTabs

	// UI references for dynamic updates
	pipesContainer  *fyne.Container
	resultContainer *fyne.Container
	statusLabel     *widget.Label
	calcButton      *ttwidget.Button
	calculating     bool
	results         resultGuard
}

// NewApp loads the user's preferences, catalog and templates and starts an
// empty project with the preferred defaults. Missing files fall back to
// defaults; unreadable ones are logged.
func NewApp(application fyne.App, window fyne.Window, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		fyneApp: application,
		window:  window,
		logger:  logger,
		history: NewHistory(),
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("failed to load preferences, using defaults", zap.Error(err))
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg
	application.Settings().SetTheme(ForName(cfg.Theme))

	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		logger.Warn("failed to load pipe catalog", zap.String("path", path), zap.Error(err))
	}
	a.inventory, a.inventoryPath = inv, path

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		logger.Warn("failed to load job templates", zap.Error(err))
	}
	a.templates = templates

	a.project = a.newProject()
	return a
}

// newProject returns an empty project using the preferred defaults.
func (a *App) newProject() model.Project {
	proj := model.NewProject()
	a.config.ApplyToSettings(&proj.Settings)
	proj.Container = a.config.NewContainer()
	return proj
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.setProject(a.newProject(), "")
		}),
		fyne.NewMenuItem("New from Template...", a.showNewFromTemplateDialog),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		recent,
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItem("Save as Template...", a.showSaveTemplateDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Pipes from CSV...", a.importCSV),
		fyne.NewMenuItem("Import Pipes from Excel...", a.importExcel),
		fyne.NewMenuItem("Import Profiles from DXF...", a.importDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", a.exportPDF),
		fyne.NewMenuItem("Export Excel Workbook...", a.exportExcel),
		fyne.NewMenuItem("Export DXF Cross-Section...", a.exportDXF),
		fyne.NewMenuItem("Export Load Labels...", a.exportLabels),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Pipes", func() {
			a.pushHistory("Clear Pipes")
			a.project.Pipes = []model.Pipe{}
			a.invalidateResult()
			a.refreshPipesList()
			a.refreshResults()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate", a.runCalculate),
		fyne.NewMenuItem("Compare Scenarios...", a.showCompareDialog),
		fyne.NewMenuItem("Advanced Settings...", a.showAdvancedSettingsDialog),
	)

	adminMenu := fyne.NewMenu("Admin",
		fyne.NewMenuItem("Pipe Catalog...", a.showPipeCatalogDialog),
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, adminMenu, helpMenu))
}

func (a *App) recentMenu() *fyne.Menu {
	if len(a.config.RecentProjects) == 0 {
		item := fyne.NewMenuItem("(none)", nil)
		item.Disabled = true
		return fyne.NewMenu("", item)
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentProjects))
	for _, path := range a.config.RecentProjects {
		items = append(items, fyne.NewMenuItem(path, func() {
			a.openProjectPath(path)
		}))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PipeLoad",
		"PipeLoad - Pipe Container Loading Planner\n\n"+
			"Plans how an order of pipes is loaded into shipping\n"+
			"containers: telescoping smaller pipes into larger ones,\n"+
			"packing cross-sections and counting containers by\n"+
			"space and by weight.\n\n"+
			"Version "+Version,
		a.window,
	)
}

// Version is the application version shown in the about dialog.
var Version = "1.0.0"

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItem("Pipes", a.buildPipesPanel()),
		container.NewTabItem("Container", a.buildContainerPanel()),
		container.NewTabItem("Settings", a.buildSettingsPanel()),
		container.NewTabItem("Results", a.buildResultsPanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.statusLabel = widget.NewLabel("")
	a.calcButton = newButtonWithTooltip("Calculate", theme.MediaPlayIcon(),
		"Resolve telescoping, pack the cross-section and count containers", a.runCalculate)
	a.calcButton.Importance = widget.HighImportance

	statusBar := container.NewHBox(a.statusLabel, layout.NewSpacer(), a.calcButton)
	return container.NewBorder(nil, statusBar, nil, nil, a.tabs)
}

// setProject replaces the open project and resets history and all panels.
func (a *App) setProject(proj model.Project, path string) {
	a.project = proj
	a.projectPath = path
	a.results.invalidate()
	a.history.Clear()
	a.refreshAll()
}

func (a *App) refreshAll() {
	a.refreshPipesList()
	a.tabs.Items[tabContainer].Content = a.buildContainerPanel()
	a.tabs.Items[tabSettings].Content = a.buildSettingsPanel()
	a.tabs.Refresh()
	a.refreshResults()
}

// ─── Pipes Panel ───────────────────────────────────────────

func (a *App) buildPipesPanel() fyne.CanvasObject {
	a.pipesContainer = container.NewVBox()
	a.refreshPipesList()

	addBtn := widget.NewButtonWithIcon("Add Pipe", theme.ContentAddIcon(), a.showAddPipeDialog)
	catalogBtn := widget.NewButtonWithIcon("Add from Catalog", theme.ListIcon(), a.showAddPipeFromCatalog)

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Order", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			catalogBtn,
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.pipesContainer),
	)
}

func (a *App) refreshPipesList() {
	if a.pipesContainer == nil {
		return
	}
	a.pipesContainer.RemoveAll()

	if len(a.project.Pipes) == 0 {
		a.pipesContainer.Add(widget.NewLabel("No pipes added yet. Click 'Add Pipe' to begin."))
		return
	}

	header := container.NewGridWithColumns(9,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("OD (cm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("ID (cm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Length (cm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Qty (m)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("kg/m", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Pieces", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(""),
		widget.NewLabel(""),
	)
	a.pipesContainer.Add(header)
	a.pipesContainer.Add(widget.NewSeparator())

	for i := range a.project.Pipes {
		idx := i
		p := a.project.Pipes[idx]
		row := container.NewGridWithColumns(9,
			widget.NewLabel(p.Label),
			widget.NewLabel(fmt.Sprintf("%.2f", p.ExternalDiameter)),
			widget.NewLabel(fmt.Sprintf("%.2f", p.InternalDiameter)),
			widget.NewLabel(fmt.Sprintf("%.0f", p.Length)),
			widget.NewLabel(fmt.Sprintf("%.1f", p.QuantityMeters)),
			widget.NewLabel(fmt.Sprintf("%.2f", p.WeightPerMeter)),
			widget.NewLabel(fmt.Sprintf("%d", p.PieceCount())),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit pipe", func() {
				a.showEditPipeDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Remove pipe", func() {
				a.pushHistory("Remove Pipe")
				a.project.Pipes = append(a.project.Pipes[:idx], a.project.Pipes[idx+1:]...)
				a.invalidateResult()
				a.refreshPipesList()
			}),
		)
		a.pipesContainer.Add(row)
	}
}

// pipeForm holds the entries of the add/edit pipe dialogs.
type pipeForm struct {
	label, external, internal, length, quantity, weight *widget.Entry
}

func newPipeForm(p model.Pipe) pipeForm {
	entry := func(text, placeholder string) *widget.Entry {
		e := widget.NewEntry()
		e.SetPlaceHolder(placeholder)
		e.SetText(text)
		return e
	}
	num := func(v float64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return pipeForm{
		label:    entry(p.Label, "Pipe name"),
		external: entry(num(p.ExternalDiameter), "External diameter in cm"),
		internal: entry(num(p.InternalDiameter), "Internal diameter in cm"),
		length:   entry(num(p.Length), "Unit length in cm"),
		quantity: entry(num(p.QuantityMeters), "Total metres ordered"),
		weight:   entry(num(p.WeightPerMeter), "kg per metre"),
	}
}

func (f pipeForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Label", f.label),
		widget.NewFormItem("External Ø (cm)", f.external),
		widget.NewFormItem("Internal Ø (cm)", f.internal),
		widget.NewFormItem("Length (cm)", f.length),
		widget.NewFormItem("Quantity (m)", f.quantity),
		widget.NewFormItem("Weight (kg/m)", f.weight),
	}
}

// apply parses the entries into p and validates the result.
func (f pipeForm) apply(p *model.Pipe) error {
	values, err := parseFields(
		field{"external diameter", f.external.Text},
		field{"internal diameter", f.internal.Text},
		field{"length", f.length.Text},
		field{"quantity", f.quantity.Text},
		field{"weight per metre", f.weight.Text},
	)
	if err != nil {
		return err
	}
	candidate := *p
	candidate.Label = strings.TrimSpace(f.label.Text)
	candidate.ExternalDiameter = values[0]
	candidate.InternalDiameter = values[1]
	candidate.Length = values[2]
	candidate.QuantityMeters = values[3]
	candidate.WeightPerMeter = values[4]
	if err := candidate.Validate(); err != nil {
		return err
	}
	*p = candidate
	return nil
}

func (a *App) showAddPipeDialog() {
	p := model.NewPipe(fmt.Sprintf("Pipe %d", len(a.project.Pipes)+1), 0, 0, 1200, 0, 0)
	form := newPipeForm(p)

	d := dialog.NewForm("Add Pipe", "Add", "Cancel", form.items(),
		func(ok bool) {
			if !ok {
				return
			}
			if err := form.apply(&p); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.pushHistory("Add Pipe")
			a.project.Pipes = append(a.project.Pipes, p)
			a.invalidateResult()
			a.refreshPipesList()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 400))
	d.Show()
}

func (a *App) showEditPipeDialog(idx int) {
	p := a.project.Pipes[idx]
	form := newPipeForm(p)

	d := dialog.NewForm("Edit Pipe", "Save", "Cancel", form.items(),
		func(ok bool) {
			if !ok {
				return
			}
			if err := form.apply(&p); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.pushHistory("Edit Pipe")
			a.project.Pipes[idx] = p
			a.invalidateResult()
			a.refreshPipesList()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 400))
	d.Show()
}

// ─── Container Panel ───────────────────────────────────────

func (a *App) buildContainerPanel() fyne.CanvasObject {
	c := a.project.Container
	form := newContainerForm(c)

	presetSelect := widget.NewSelect(a.inventory.ContainerNames(), func(selected string) {
		if preset, ok := a.inventory.FindContainerByName(selected); ok {
			form.set(preset.ToContainer())
		}
	})
	presetSelect.PlaceHolder = "Select a container preset..."

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		updated := a.project.Container
		if err := form.apply(&updated); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pushHistory("Change Container")
		a.project.Container = updated
		a.invalidateResult()
		a.setStatus(fmt.Sprintf("Container set to %s", updated.Label))
	})

	saveBtn := widget.NewButtonWithIcon("Save to Catalog", theme.DocumentSaveIcon(), func() {
		var c model.Container
		if err := form.apply(&c); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.inventory.Containers = append(a.inventory.Containers, model.ContainerPreset{
			Name: c.Label, Width: c.Width, Height: c.Height, Length: c.Length, WeightCapacity: c.WeightCapacity,
		})
		a.saveInventory()
		a.tabs.Items[tabContainer].Content = a.buildContainerPanel()
		a.tabs.Refresh()
	})

	card := widget.NewCard("Container", "Inner dimensions; weight capacity 0 means unlimited",
		container.NewVBox(
			widget.NewForm(append([]*widget.FormItem{widget.NewFormItem("Preset", presetSelect)}, form.items()...)...),
			container.NewHBox(layout.NewSpacer(), saveBtn, applyBtn),
		))
	return container.NewVScroll(card)
}

type containerForm struct {
	label, width, height, length, weight *widget.Entry
}

func newContainerForm(c model.Container) containerForm {
	f := containerForm{
		label:  widget.NewEntry(),
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
		length: widget.NewEntry(),
		weight: widget.NewEntry(),
	}
	f.set(c)
	return f
}

func (f containerForm) set(c model.Container) {
	f.label.SetText(c.Label)
	f.width.SetText(strconv.FormatFloat(c.Width, 'f', -1, 64))
	f.height.SetText(strconv.FormatFloat(c.Height, 'f', -1, 64))
	f.length.SetText(strconv.FormatFloat(c.Length, 'f', -1, 64))
	f.weight.SetText(strconv.FormatFloat(c.WeightCapacity, 'f', -1, 64))
}

func (f containerForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Label", f.label),
		widget.NewFormItem("Width (cm)", f.width),
		widget.NewFormItem("Height (cm)", f.height),
		widget.NewFormItem("Length (cm)", f.length),
		widget.NewFormItem("Weight Capacity (kg)", f.weight),
	}
}

func (f containerForm) apply(c *model.Container) error {
	values, err := parseFields(
		field{"width", f.width.Text},
		field{"height", f.height.Text},
		field{"length", f.length.Text},
		field{"weight capacity", f.weight.Text},
	)
	if err != nil {
		return err
	}
	candidate := *c
	candidate.Label = strings.TrimSpace(f.label.Text)
	candidate.Width, candidate.Height, candidate.Length, candidate.WeightCapacity = values[0], values[1], values[2], values[3]
	if err := candidate.Validate(); err != nil {
		return err
	}
	*c = candidate
	return nil
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := a.project.Settings

	minSpace := widget.NewEntry()
	minSpace.SetText(strconv.FormatFloat(s.MinSpace, 'f', -1, 64))
	allowance := widget.NewEntry()
	allowance.SetText(strconv.FormatFloat(s.Allowance, 'f', -1, 64))
	price := widget.NewEntry()
	price.SetText(strconv.FormatFloat(s.PricePerContainer, 'f', -1, 64))

	fastPath := widget.NewCheck("Use grid formula when min space is 0", nil)
	fastPath.SetChecked(s.GridFastPath)

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		values, err := parseFields(
			field{"min space", minSpace.Text},
			field{"allowance", allowance.Text},
			field{"price per container", price.Text},
		)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if values[0] < 0 || values[1] < 0 || values[2] < 0 {
			dialog.ShowError(fmt.Errorf("settings must not be negative"), a.window)
			return
		}
		a.pushHistory("Change Settings")
		a.project.Settings.MinSpace = values[0]
		a.project.Settings.Allowance = values[1]
		a.project.Settings.PricePerContainer = values[2]
		a.project.Settings.GridFastPath = fastPath.Checked
		a.invalidateResult()
		a.setStatus("Settings updated")
	})

	packing := widget.NewCard("Packing", "", widget.NewForm(
		widget.NewFormItem("Min Space (cm)", minSpace),
		widget.NewFormItem("Nesting Allowance (cm)", allowance),
		widget.NewFormItem("", fastPath),
	))
	freight := widget.NewCard("Freight", "", widget.NewForm(
		widget.NewFormItem("Price per Container", price),
	))

	return container.NewVScroll(container.NewVBox(
		packing,
		freight,
		container.NewHBox(layout.NewSpacer(), applyBtn),
	))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Add pipes and choose a container, then click Calculate."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderResults(a.project))
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runCalculate() {
	if a.calculating {
		return
	}
	if len(a.project.Pipes) == 0 {
		dialog.ShowInformation("Nothing to calculate", "Add at least one pipe first.", a.window)
		return
	}
	if err := a.project.Container.Validate(); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	pipes := copyPipes(a.project.Pipes)
	c := a.project.Container
	calc := engine.New(a.project.Settings, engine.WithLogger(a.logger))

	token := a.results.current()
	a.calculating = true
	a.calcButton.Disable()
	a.setStatus("Calculating...")

	go func() {
		start := time.Now()
		result := calc.Calculate(pipes, c)
		elapsed := time.Since(start)

		fyne.Do(func() {
			a.calculating = false
			a.calcButton.Enable()
			if !a.results.valid(token) {
				a.logger.Info("discarding result of an outdated calculation", zap.Duration("elapsed", elapsed))
				a.setStatus("Order changed during calculation; calculate again")
				return
			}
			a.project.Result = &result
			a.refreshResults()
			a.tabs.SelectIndex(tabResults)

			a.logger.Info("calculation finished",
				zap.Int("pipes", len(pipes)),
				zap.Int("containers", result.Plan.TotalContainers),
				zap.String("limiting_factor", string(result.Plan.LimitingFactor)),
				zap.Duration("elapsed", elapsed))
			a.setStatus(fmt.Sprintf("%s (%s)", widgets.SummaryLine(result.Plan, c), elapsed.Round(time.Millisecond)))
		})
	}()
}

// resultGuard tells whether a background calculation still matches the
// open project. Every edit that clears the result moves it on.
// Only touched from the UI goroutine.
type resultGuard struct {
	generation uint64
}

// current returns the token a calculation started now carries.
func (g *resultGuard) current() uint64 { return g.generation }

// invalidate makes every outstanding token stale.
func (g *resultGuard) invalidate() { g.generation++ }

// valid reports whether no edit happened since token was taken.
func (g *resultGuard) valid(token uint64) bool { return token == g.generation }

// invalidateResult drops the current result after an edit to the project.
func (a *App) invalidateResult() {
	a.project.Result = nil
	a.results.invalidate()
}

func (a *App) setStatus(text string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(text)
	}
}

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.project, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.project, "current"))
	if !ok {
		return
	}
	snap.Apply(&a.project)
	a.results.invalidate()
	a.refreshAll()
	a.setStatus("Undo: " + snap.Label)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.project, "current"))
	if !ok {
		return
	}
	snap.Apply(&a.project)
	a.results.invalidate()
	a.refreshAll()
	a.setStatus("Redo")
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.Save(path, a.project); err != nil {
			a.logger.Error("failed to save project", zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		a.projectPath = path
		a.rememberProject(path)
		a.setStatus("Saved " + path)
	}, a.window)
	d.SetFileName(project.WithExtension(a.project.Name))
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openProjectPath(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.FileExtension}))
	d.Show()
}

func (a *App) openProjectPath(path string) {
	proj, err := project.Load(path)
	if err != nil {
		a.logger.Error("failed to open project", zap.String("path", path), zap.Error(err))
		dialog.ShowError(err, a.window)
		return
	}
	a.setProject(proj, path)
	a.rememberProject(path)
	a.setStatus("Opened " + path)
}

func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("failed to save recent projects", zap.Error(err))
	}
	a.SetupMenus()
}

// field is a named text value to parse as a number.
type field struct {
	name, text string
}

// parseFields parses every field as a float, accepting a decimal comma.
func parseFields(fields ...field) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		text := strings.ReplaceAll(strings.TrimSpace(f.text), ",", ".")
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", f.name, f.text)
		}
		values[i] = v
	}
	return values, nil
}
