package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/model"
	"github.com/piwi3910/PipeLoad/internal/project"
)

// showSaveTemplateDialog stores the current order, container and settings
// as a reusable job template.
func (a *App) showSaveTemplateDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Template name")
	nameEntry.SetText(a.project.Name)

	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Optional description")

	d := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("template name must not be empty"), a.window)
				return
			}
			if existing := a.templates.FindByName(name); existing != nil {
				a.templates.Remove(existing.ID)
			}
			a.templates.Add(model.NewJobTemplate(name, strings.TrimSpace(descEntry.Text),
				a.project.Pipes, a.project.Container, a.project.Settings))
			if err := project.SaveDefaultTemplates(a.templates); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
				return
			}
			a.logger.Info("template saved", zap.String("name", name), zap.Int("pipes", len(a.project.Pipes)))
			a.setStatus(fmt.Sprintf("Template %q saved", name))
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 300))
	d.Show()
}

// showNewFromTemplateDialog starts a new project from a saved job template.
func (a *App) showNewFromTemplateDialog() {
	names := a.templates.Names()
	if len(names) == 0 {
		dialog.ShowInformation("No Templates",
			"No job templates saved yet. Use File > Save as Template to create one.",
			a.window)
		return
	}

	description := widget.NewLabel("")
	description.Wrapping = fyne.TextWrapWord
	templateSelect := widget.NewSelect(names, func(selected string) {
		if t := a.templates.FindByName(selected); t != nil {
			description.SetText(templateSummary(*t))
		}
	})
	templateSelect.SetSelected(names[0])

	projectName := widget.NewEntry()
	projectName.SetText("Untitled Project")

	d := dialog.NewForm("New from Template", "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Template", templateSelect),
			widget.NewFormItem("", description),
			widget.NewFormItem("Project Name", projectName),
		},
		func(ok bool) {
			if !ok {
				return
			}
			t := a.templates.FindByName(templateSelect.Selected)
			if t == nil {
				return
			}
			a.setProject(t.ToProject(strings.TrimSpace(projectName.Text)), "")
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 320))
	d.Show()
}

// templateSummary describes a template in one line for the picker.
func templateSummary(t model.JobTemplate) string {
	summary := fmt.Sprintf("%d pipe type(s) in %s", len(t.Pipes), t.Container.Label)
	if t.Description != "" {
		summary += ": " + t.Description
	}
	return summary
}
