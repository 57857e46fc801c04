package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// centerTolerance is how far apart (in drawing units) two circle centres may
// be and still count as concentric.
const centerTolerance = 0.01

// profile is a set of concentric circles sharing a centre.
type profile struct {
	center model.Point2D
	radii  []float64
}

// ImportDXF imports pipe cross-sections from a DXF file. Every set of
// concentric CIRCLE entities is read as one or more pipe profiles: radii are
// taken largest first in pairs, the first of each pair giving the external
// diameter and the second the internal diameter. Scale converts drawing units
// to centimetres (0.1 for drawings in mm); values <= 0 mean 1.
//
// Length, quantity and weight cannot be read from a cross-section drawing and
// are left at zero for the user to fill in.
func ImportDXF(path string, scale float64) ImportResult {
	result := ImportResult{}
	if scale <= 0 {
		scale = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var profiles []*profile
	skipped := 0
	for _, ent := range entities {
		c, ok := ent.(*entity.Circle)
		if !ok {
			skipped++
			continue
		}
		center := model.Point2D{X: c.Center[0], Y: c.Center[1]}
		p := findProfile(profiles, center)
		if p == nil {
			p = &profile{center: center}
			profiles = append(profiles, p)
		}
		p.radii = append(p.radii, c.Radius)
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d non-circle entities", skipped))
	}

	if len(profiles) == 0 {
		result.Errors = append(result.Errors, "No circles found in DXF file")
		return result
	}

	for _, p := range profiles {
		radii := dedupe(p.radii)
		sort.Sort(sort.Reverse(sort.Float64Slice(radii)))

		if len(radii)%2 == 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Circle of radius %.2f at (%.2f, %.2f) has no matching bore, skipped", radii[len(radii)-1], p.center.X, p.center.Y))
			radii = radii[:len(radii)-1]
		}

		for k := 0; k+1 < len(radii); k += 2 {
			external := 2 * radii[k] * scale
			internal := 2 * radii[k+1] * scale
			label := fmt.Sprintf("DXF Ø%.1f/%.1f", external, internal)
			result.Pipes = append(result.Pipes, model.NewPipe(label, external, internal, 0, 0, 0))
		}
	}

	if len(result.Pipes) == 0 {
		result.Errors = append(result.Errors, "No pipe profiles found in DXF file")
		return result
	}
	result.Warnings = append(result.Warnings, "Set length, quantity and weight per meter for imported pipes")
	return result
}

func findProfile(profiles []*profile, center model.Point2D) *profile {
	for _, p := range profiles {
		if math.Hypot(p.center.X-center.X, p.center.Y-center.Y) <= centerTolerance {
			return p
		}
	}
	return nil
}

// dedupe drops radii drawn twice.
func dedupe(radii []float64) []float64 {
	out := make([]float64, 0, len(radii))
	for _, r := range radii {
		dup := false
		for _, o := range out {
			if math.Abs(o-r) <= centerTolerance {
				dup = true
				break
			}
		}
		if !dup && r > 0 {
			out = append(out, r)
		}
	}
	return out
}
