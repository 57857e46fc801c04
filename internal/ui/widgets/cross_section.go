package widgets

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// Template colors, cycled in template order so the canvas matches the PDF legend.
var templateColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 220},  // green
	{R: 33, G: 150, B: 243, A: 220}, // blue
	{R: 255, G: 152, B: 0, A: 220},  // orange
	{R: 156, G: 39, B: 176, A: 220}, // purple
	{R: 0, G: 188, B: 212, A: 220},  // cyan
	{R: 244, G: 67, B: 54, A: 220},  // red
	{R: 255, G: 235, B: 59, A: 220}, // yellow
	{R: 121, G: 85, B: 72, A: 220},  // brown
}

// CircleBox returns the top-left corner and edge length of the square
// bounding a circle of radius r centred at (x, y) in container coordinates.
// Container y grows upward from the floor; canvas y grows downward.
func CircleBox(x, y, r, containerHeight float64, scale float32) (fyne.Position, float32) {
	return fyne.NewPos(float32(x-r)*scale, float32(containerHeight-y-r)*scale), float32(2*r) * scale
}

// FitScale returns the scale that fits a w x h container into maxW x maxH.
func FitScale(w, h float64, maxW, maxH float32) float32 {
	if w <= 0 || h <= 0 {
		return 0
	}
	return min(maxW/float32(w), maxH/float32(h))
}

// CrossSection renders one container cross-section loaded with a layout.
type CrossSection struct {
	widget.BaseWidget
	container model.Container
	layout    model.PackingResult
	colors    map[string]color.NRGBA
	rings     map[string][]float64 // Inner member radii per nested template
	maxWidth  float32
	maxHeight float32
}

// NewCrossSection builds the canvas for a calculated project.
func NewCrossSection(proj model.Project, maxW, maxH float32) *CrossSection {
	cs := &CrossSection{
		container: proj.Container,
		colors:    map[string]color.NRGBA{},
		rings:     map[string][]float64{},
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	if proj.Result != nil {
		cs.layout = proj.Result.Layout
		for i, t := range proj.Result.Templates {
			cs.colors[t.ID] = templateColors[i%len(templateColors)]
			if !t.Nested() {
				continue
			}
			for _, id := range t.Members[1:] {
				if p := proj.FindPipe(id); p != nil {
					cs.rings[t.ID] = append(cs.rings[t.ID], p.ExternalDiameter/2)
				}
			}
		}
	}
	cs.ExtendBaseWidget(cs)
	return cs
}

func (cs *CrossSection) CreateRenderer() fyne.WidgetRenderer {
	return newCrossSectionRenderer(cs)
}

type crossSectionRenderer struct {
	cs      *CrossSection
	objects []fyne.CanvasObject
}

func newCrossSectionRenderer(cs *CrossSection) *crossSectionRenderer {
	r := &crossSectionRenderer{cs: cs}
	r.rebuild()
	return r
}

func (r *crossSectionRenderer) rebuild() {
	r.objects = nil

	c := r.cs.container
	scale := FitScale(c.Width, c.Height, r.cs.maxWidth, r.cs.maxHeight)
	if scale == 0 {
		return
	}
	canvasW := float32(c.Width) * scale
	canvasH := float32(c.Height) * scale

	// Container floor and walls
	bg := canvas.NewRectangle(color.NRGBA{R: 225, G: 225, B: 225, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	for _, pc := range r.cs.layout.Circles {
		pos, size := CircleBox(pc.X, pc.Y, pc.Radius, c.Height, scale)
		circle := canvas.NewCircle(r.cs.colors[pc.TemplateID])
		circle.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		circle.StrokeWidth = 1
		circle.Resize(fyne.NewSize(size, size))
		circle.Move(pos)
		r.objects = append(r.objects, circle)

		for _, inner := range r.cs.rings[pc.TemplateID] {
			pos, size := CircleBox(pc.X, pc.Y, inner, c.Height, scale)
			ring := canvas.NewCircle(color.Transparent)
			ring.StrokeColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			ring.StrokeWidth = 1
			ring.Resize(fyne.NewSize(size, size))
			ring.Move(pos)
			r.objects = append(r.objects, ring)
		}
	}
}

func (r *crossSectionRenderer) Layout(size fyne.Size)        {}
func (r *crossSectionRenderer) Refresh()                     { r.rebuild() }
func (r *crossSectionRenderer) Destroy()                     {}
func (r *crossSectionRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *crossSectionRenderer) MinSize() fyne.Size {
	c := r.cs.container
	scale := FitScale(c.Width, c.Height, r.cs.maxWidth, r.cs.maxHeight)
	return fyne.NewSize(float32(c.Width)*scale, float32(c.Height)*scale)
}

// RenderResults creates a scrollable view of a calculated project: the
// plan summary, the per-pipe telescoping table, the per-container breakdown
// and the cross-section of one loaded container.
func RenderResults(proj model.Project) fyne.CanvasObject {
	if proj.Result == nil {
		return widget.NewLabel("No results yet. Add pipes and choose a container, then click Calculate.")
	}
	result := proj.Result
	if result.Failure != "" {
		warning := widget.NewLabel("Calculation failed: " + result.Failure)
		warning.Importance = widget.DangerImportance
		return warning
	}

	var items []fyne.CanvasObject

	summary := widget.NewLabel(SummaryLine(result.Plan, proj.Container))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	details := fmt.Sprintf("By packing: %d | By weight: %d | Pieces: %d | Weight: %.0f kg | Volume utilization: %.1f%%",
		result.Plan.PackingContainers, result.Plan.WeightContainers, result.Plan.TotalPieces,
		result.Plan.TotalWeight, result.Estimate.VolumeUtilization)
	if result.Estimate.EstimatedCost > 0 {
		details += fmt.Sprintf(" | Estimated freight: %.2f", result.Estimate.EstimatedCost)
	}
	items = append(items, widget.NewLabel(details))

	if result.Plan.Infeasible {
		labels := make([]string, 0, len(result.Plan.InfeasibleIDs))
		for _, id := range result.Plan.InfeasibleIDs {
			if p := proj.FindPipe(id); p != nil {
				labels = append(labels, p.Label)
			}
		}
		warning := widget.NewLabel(fmt.Sprintf("WARNING: cannot be loaded into %s (%s): %s",
			proj.Container.Label, result.Plan.LimitingFactor, strings.Join(labels, ", ")))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	items = append(items, widget.NewSeparator(), boldLabel("Telescoping"))
	for _, line := range TelescopingLines(proj) {
		items = append(items, widget.NewLabel(line))
	}

	items = append(items, widget.NewSeparator(), boldLabel(fmt.Sprintf("Containers (%d)", result.Plan.TotalContainers)))
	for _, line := range BreakdownLines(result.Plan) {
		items = append(items, widget.NewLabel(line))
	}

	items = append(items, widget.NewSeparator(), boldLabel(fmt.Sprintf(
		"Cross-section: %d columns, %.1f%% fill", result.Layout.Placed(), result.Layout.FillRatio(proj.Container.CrossSection())*100)))
	items = append(items, NewCrossSection(proj, 600, 500))

	return container.NewVScroll(container.NewVBox(items...))
}

// SummaryLine is the one-line headline of a plan.
func SummaryLine(plan model.ContainerPlan, c model.Container) string {
	if plan.Infeasible {
		return fmt.Sprintf("Order cannot be loaded into %s", c.Label)
	}
	return fmt.Sprintf("%d x %s needed (limited by %s)", plan.TotalContainers, c.Label, plan.LimitingFactor)
}

// TelescopingLines describes how each pipe of the project was resolved.
func TelescopingLines(proj model.Project) []string {
	if proj.Result == nil {
		return nil
	}
	lines := make([]string, 0, len(proj.Result.Resolutions))
	for _, res := range proj.Result.Resolutions {
		p := proj.FindPipe(res.PipeID)
		if p == nil {
			continue
		}
		switch {
		case res.NestedIn != "":
			outer := res.NestedIn
			if o := proj.FindPipe(res.NestedIn); o != nil {
				outer = o.Label
			}
			lines = append(lines, fmt.Sprintf("  %s: nested in %s (%s)", p.Label, outer, res.Telescoping))
		case len(res.NestedWith) > 0:
			lines = append(lines, fmt.Sprintf("  %s: carries %d pipe(s), %s, effective %.1f cm x %.0f cm",
				p.Label, len(res.NestedWith), res.Telescoping, res.EffectiveDiameter, res.EffectiveLength))
		default:
			lines = append(lines, fmt.Sprintf("  %s: standalone", p.Label))
		}
	}
	return lines
}

// BreakdownLines lists each container's contents.
func BreakdownLines(plan model.ContainerPlan) []string {
	lines := make([]string, 0, len(plan.Containers))
	for _, load := range plan.Containers {
		parts := make([]string, len(load.Entries))
		for i, e := range load.Entries {
			parts[i] = fmt.Sprintf("%s x%d", e.Label, e.Count)
			if e.Nested {
				parts[i] += " (nested)"
			}
		}
		lines = append(lines, fmt.Sprintf("  #%d: %s | %d pcs, %.0f kg",
			load.Index+1, strings.Join(parts, ", "), load.Pieces(), load.Weight))
	}
	return lines
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}
