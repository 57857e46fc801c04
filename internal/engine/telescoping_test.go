package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func testPipe(id string, external, internal, length float64) model.Pipe {
	return model.Pipe{
		ID:               id,
		Label:            id,
		ExternalDiameter: external,
		InternalDiameter: internal,
		Length:           length,
		QuantityMeters:   10,
		WeightPerMeter:   2,
	}
}

func resolutionFor(t *testing.T, res Resolution, id string) model.PipeResolution {
	t.Helper()
	for _, pr := range res.Resolutions {
		if pr.PipeID == id {
			return pr
		}
	}
	t.Fatalf("no resolution for %s", id)
	return model.PipeResolution{}
}

func TestResolve_FullTelescoping(t *testing.T) {
	outer := testPipe("outer", 20, 18, 200)
	inner := testPipe("inner", 15, 13, 150)

	res := Resolve([]model.Pipe{inner, outer}, 0)

	require.Len(t, res.Templates, 1)
	tmpl := res.Templates[0]
	assert.Equal(t, model.TelescopingFull, tmpl.Telescoping)
	assert.Equal(t, 20.0, tmpl.Diameter)
	assert.Equal(t, 200.0, tmpl.Length)
	assert.Equal(t, []string{"outer", "inner"}, tmpl.Members)
	assert.InDelta(t, outer.UnitWeight()+inner.UnitWeight(), tmpl.Weight, 1e-9)

	require.Len(t, res.Relationships, 1)
	assert.Equal(t, "outer", res.Relationships[0].OuterID)
	assert.Equal(t, []string{"inner"}, res.Relationships[0].NestedIDs)

	// Resolutions follow caller order.
	require.Len(t, res.Resolutions, 2)
	assert.Equal(t, "inner", res.Resolutions[0].PipeID)
	assert.Equal(t, "outer", res.Resolutions[0].NestedIn)
	assert.Equal(t, []string{"inner"}, resolutionFor(t, res, "outer").NestedWith)
}

func TestResolve_PartialTelescoping(t *testing.T) {
	outer := testPipe("outer", 20, 18, 200)
	inner := testPipe("inner", 15, 13, 300)

	res := Resolve([]model.Pipe{outer, inner}, 0)

	require.Len(t, res.Templates, 1)
	tmpl := res.Templates[0]
	assert.Equal(t, model.TelescopingPartial, tmpl.Telescoping)
	assert.Equal(t, 20.0, tmpl.Diameter)
	assert.Equal(t, 300.0, tmpl.Length)
	assert.Equal(t, model.TelescopingPartial, resolutionFor(t, res, "inner").Telescoping)
	assert.Equal(t, 300.0, resolutionFor(t, res, "outer").EffectiveLength)
}

func TestResolve_AllowanceBlocksNesting(t *testing.T) {
	outer := testPipe("outer", 20, 18, 200)
	inner := testPipe("inner", 15, 13, 150)

	// 18 - 2*2 = 14 < 15
	res := Resolve([]model.Pipe{outer, inner}, 2)

	assert.Len(t, res.Templates, 2)
	assert.Empty(t, res.Relationships)
	assert.Empty(t, res.Groups())
	assert.Len(t, res.Standalone(), 2)
	assert.Equal(t, model.TelescopingNone, resolutionFor(t, res, "inner").Telescoping)
	assert.Equal(t, 15.0, resolutionFor(t, res, "inner").EffectiveDiameter)
}

func TestResolve_MultiLevelNesting(t *testing.T) {
	pipes := []model.Pipe{
		testPipe("small", 8, 6, 100),
		testPipe("large", 30, 27, 300),
		testPipe("medium", 20, 17, 200),
	}

	res := Resolve(pipes, 0.5)

	require.Len(t, res.Templates, 1)
	assert.Equal(t, []string{"large", "medium", "small"}, res.Templates[0].Members)
	assert.Equal(t, []string{"medium", "small"}, res.Relationships[0].NestedIDs)
	assert.Equal(t, map[string]string{"medium": "large", "small": "large"}, res.NestedIn())
}

func TestResolve_SiblingsDoNotShareABore(t *testing.T) {
	// Both fit in the outer, but after the first is accepted the bore shrinks
	// to the first's internal diameter, which the second does not fit.
	pipes := []model.Pipe{
		testPipe("outer", 40, 36, 300),
		testPipe("a", 20, 18, 200),
		testPipe("b", 19, 17, 200),
	}

	res := Resolve(pipes, 0)

	require.Len(t, res.Templates, 2)
	assert.Equal(t, []string{"outer", "a"}, res.Templates[0].Members)
	assert.Equal(t, []string{"b"}, res.Templates[1].Members)
}

func TestResolve_NestingValidity(t *testing.T) {
	pipes := []model.Pipe{
		testPipe("p1", 50, 45, 600),
		testPipe("p2", 44, 40, 600),
		testPipe("p3", 39, 35, 700),
		testPipe("p4", 25, 22, 500),
		testPipe("p5", 11, 9, 600),
		testPipe("p6", 10, 8, 600),
	}
	byID := map[string]model.Pipe{}
	for _, p := range pipes {
		byID[p.ID] = p
	}
	allowance := 0.75

	res := Resolve(pipes, allowance)

	for _, rel := range res.Relationships {
		host := byID[rel.OuterID]
		for _, id := range rel.NestedIDs {
			nested := byID[id]
			assert.LessOrEqual(t, nested.ExternalDiameter, host.InternalDiameter-2*allowance,
				"%s nested in %s", id, host.ID)
			host = nested
		}
	}
}

func TestResolve_DimensionLaw(t *testing.T) {
	pipes := []model.Pipe{
		testPipe("a", 40, 36, 300),
		testPipe("b", 30, 27, 500),
		testPipe("c", 20, 18, 100),
		testPipe("d", 10, 8, 200),
	}
	byID := map[string]model.Pipe{}
	for _, p := range pipes {
		byID[p.ID] = p
	}

	res := Resolve(pipes, 0)

	for _, rel := range res.Relationships {
		outer := byID[rel.OuterID]
		pr := resolutionFor(t, res, rel.OuterID)
		switch rel.Type {
		case model.TelescopingFull:
			assert.Equal(t, outer.Length, pr.EffectiveLength)
		case model.TelescopingPartial:
			maxLen := outer.Length
			for _, id := range rel.NestedIDs {
				maxLen = max(maxLen, byID[id].Length)
			}
			assert.Equal(t, maxLen, pr.EffectiveLength)
		}
	}
}

func TestResolve_DoesNotModifyInput(t *testing.T) {
	pipes := []model.Pipe{
		testPipe("small", 10, 8, 100),
		testPipe("large", 30, 27, 300),
	}
	before := append([]model.Pipe(nil), pipes...)

	Resolve(pipes, 0)

	assert.Equal(t, before, pipes)
}

func TestResolve_StableForEqualDiameters(t *testing.T) {
	pipes := []model.Pipe{
		testPipe("first", 20, 18, 200),
		testPipe("second", 20, 18, 200),
	}

	res := Resolve(pipes, 0)

	require.Len(t, res.Templates, 2)
	assert.Equal(t, "first", res.Templates[0].ID)
	assert.Equal(t, "second", res.Templates[1].ID)
}

func TestResolve_Empty(t *testing.T) {
	res := Resolve(nil, 0)
	assert.Empty(t, res.Templates)
	assert.Empty(t, res.Resolutions)
}
