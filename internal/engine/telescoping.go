package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// Resolution is the outcome of telescoping a pipe list.
type Resolution struct {
	Templates     []model.PackingTemplate     // Processing order: largest outer first
	Resolutions   []model.PipeResolution      // Caller order
	Relationships []model.NestingRelationship // One per outer pipe hosting at least one pipe
}

// Groups returns the templates that stand for nested groups.
func (r Resolution) Groups() []model.PackingTemplate {
	var out []model.PackingTemplate
	for _, t := range r.Templates {
		if t.Nested() {
			out = append(out, t)
		}
	}
	return out
}

// Standalone returns the templates holding a single pipe.
func (r Resolution) Standalone() []model.PackingTemplate {
	var out []model.PackingTemplate
	for _, t := range r.Templates {
		if !t.Nested() {
			out = append(out, t)
		}
	}
	return out
}

// NestedIn maps every nested pipe ID to the ID of the outer pipe hosting it.
func (r Resolution) NestedIn() map[string]string {
	m := make(map[string]string)
	for _, pr := range r.Resolutions {
		if pr.NestedIn != "" {
			m[pr.PipeID] = pr.NestedIn
		}
	}
	return m
}

// Resolve decides which pipes telescope into which and reduces the result to
// packing templates. Allowance is the radial clearance kept on each side of a
// nested pipe, so a candidate fits when its external diameter is at most the
// host's internal diameter minus twice the allowance.
//
// Pipes are never rejected; anything that cannot nest stays standalone. The
// caller's slice is not modified.
func Resolve(pipes []model.Pipe, allowance float64) Resolution {
	if allowance < 0 {
		allowance = 0
	}

	sorted := make([]model.Pipe, len(pipes))
	copy(sorted, pipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExternalDiameter > sorted[j].ExternalDiameter
	})

	consumed := make([]bool, len(sorted))
	perPipe := make(map[string]model.PipeResolution, len(sorted))
	var (
		templates     []model.PackingTemplate
		relationships []model.NestingRelationship
	)

	for i, outer := range sorted {
		if consumed[i] {
			continue
		}
		consumed[i] = true

		var nested []model.Pipe
		available := outer.InternalDiameter - 2*allowance
		for j := i + 1; j < len(sorted) && available > 0; j++ {
			if consumed[j] {
				continue
			}
			candidate := sorted[j]
			if candidate.ExternalDiameter <= available {
				consumed[j] = true
				nested = append(nested, candidate)
				available = candidate.InternalDiameter - 2*allowance
			}
		}

		if len(nested) == 0 {
			templates = append(templates, model.PackingTemplate{
				ID:          outer.ID,
				Label:       outer.Label,
				Diameter:    outer.ExternalDiameter,
				Length:      outer.Length,
				Weight:      outer.UnitWeight(),
				Members:     []string{outer.ID},
				Telescoping: model.TelescopingNone,
			})
			perPipe[outer.ID] = model.PipeResolution{
				PipeID:            outer.ID,
				Telescoping:       model.TelescopingNone,
				EffectiveDiameter: outer.ExternalDiameter,
				EffectiveLength:   outer.Length,
			}
			continue
		}

		t, rel, resolutions := buildGroup(outer, nested)
		templates = append(templates, t)
		relationships = append(relationships, rel)
		for _, pr := range resolutions {
			perPipe[pr.PipeID] = pr
		}
	}

	ordered := make([]model.PipeResolution, 0, len(pipes))
	for _, p := range pipes {
		ordered = append(ordered, perPipe[p.ID])
	}

	return Resolution{
		Templates:     templates,
		Resolutions:   ordered,
		Relationships: relationships,
	}
}

// buildGroup classifies a resolved group and derives its effective dimensions.
func buildGroup(outer model.Pipe, nested []model.Pipe) (model.PackingTemplate, model.NestingRelationship, []model.PipeResolution) {
	groupType := model.TelescopingFull
	maxExternal := outer.ExternalDiameter
	maxLength := outer.Length
	weight := outer.UnitWeight()
	members := []string{outer.ID}
	nestedIDs := make([]string, 0, len(nested))
	labels := []string{outer.Label}
	types := make([]model.Telescoping, len(nested))

	for k, p := range nested {
		types[k] = model.TelescopingFull
		if p.Length > outer.Length {
			types[k] = model.TelescopingPartial
			groupType = model.TelescopingPartial
		}
		maxExternal = math.Max(maxExternal, p.ExternalDiameter)
		maxLength = math.Max(maxLength, p.Length)
		weight += p.UnitWeight()
		members = append(members, p.ID)
		nestedIDs = append(nestedIDs, p.ID)
		labels = append(labels, p.Label)
	}

	diameter, length := outer.ExternalDiameter, outer.Length
	if groupType == model.TelescopingPartial {
		diameter, length = maxExternal, maxLength
	}

	t := model.PackingTemplate{
		ID:          outer.ID,
		Label:       strings.Join(labels, " > "),
		Diameter:    diameter,
		Length:      length,
		Weight:      weight,
		Members:     members,
		Telescoping: groupType,
	}
	rel := model.NestingRelationship{
		OuterID:   outer.ID,
		NestedIDs: nestedIDs,
		Type:      groupType,
	}

	resolutions := make([]model.PipeResolution, 0, len(members))
	resolutions = append(resolutions, model.PipeResolution{
		PipeID:            outer.ID,
		Telescoping:       groupType,
		NestedWith:        append([]string(nil), nestedIDs...),
		EffectiveDiameter: diameter,
		EffectiveLength:   length,
	})
	for k, p := range nested {
		resolutions = append(resolutions, model.PipeResolution{
			PipeID:            p.ID,
			Telescoping:       types[k],
			NestedIn:          outer.ID,
			EffectiveDiameter: diameter,
			EffectiveLength:   length,
		})
	}
	return t, rel, resolutions
}
