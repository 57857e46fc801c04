package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// DXF layer names.
const (
	LayerContainer = "CONTAINER"
	LayerPipes     = "PIPES"
	LayerNested    = "NESTED"
	LayerText      = "TEXT"
)

// ExportDXF writes the single-container cross-section to a DXF drawing in
// centimetres: the container outline, one circle per placed column and the
// inner rings of nested groups on their own layer.
func ExportDXF(path string, proj model.Project) error {
	result, err := resultOf(proj)
	if err != nil {
		return err
	}
	c := proj.Container
	if !c.CrossSection().Valid() {
		return fmt.Errorf("invalid container cross-section %.1f x %.1f", c.Width, c.Height)
	}

	d := dxf.NewDrawing()
	for _, layer := range []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerContainer, dxf.DefaultColor},
		{LayerPipes, color.Blue},
		{LayerNested, color.Red},
		{LayerText, dxf.DefaultColor},
	} {
		if _, err := d.AddLayer(layer.name, layer.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layer.name, err)
		}
	}

	if err := d.ChangeLayer(LayerContainer); err != nil {
		return err
	}
	corners := [][2]float64{{0, 0}, {c.Width, 0}, {c.Width, c.Height}, {0, c.Height}}
	for i, p := range corners {
		q := corners[(i+1)%len(corners)]
		if _, err := d.Line(p[0], p[1], 0, q[0], q[1], 0); err != nil {
			return fmt.Errorf("failed to draw outline: %w", err)
		}
	}

	for _, circle := range result.Layout.Circles {
		if err := d.ChangeLayer(LayerPipes); err != nil {
			return err
		}
		if _, err := d.Circle(circle.X, circle.Y, 0, circle.Radius); err != nil {
			return fmt.Errorf("failed to draw pipe: %w", err)
		}

		t := result.TemplateByID(circle.TemplateID)
		if t == nil || !t.Nested() {
			continue
		}
		if err := d.ChangeLayer(LayerNested); err != nil {
			return err
		}
		for _, id := range t.Members[1:] {
			if p := proj.FindPipe(id); p != nil {
				if _, err := d.Circle(circle.X, circle.Y, 0, p.ExternalDiameter/2); err != nil {
					return fmt.Errorf("failed to draw nested pipe: %w", err)
				}
			}
		}
	}

	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	title := fmt.Sprintf("%s %.0f x %.0f cm - %d columns", c.Label, c.Width, c.Height, result.Layout.Placed())
	if _, err := d.Text(title, 0, c.Height+5, 0, 4); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	return d.SaveAs(path)
}
