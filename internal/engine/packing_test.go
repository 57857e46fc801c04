package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func circleTemplate(id string, d, weight float64) model.PackingTemplate {
	return model.PackingTemplate{ID: id, Label: id, Diameter: d, Length: 100, Weight: weight, Members: []string{id}}
}

func assertValidLayout(t *testing.T, result model.PackingResult, rect model.Rectangle) {
	t.Helper()
	for i, c := range result.Circles {
		assert.GreaterOrEqual(t, c.X-c.EffectiveRadius, -1e-9, "circle %d left of the wall", i)
		assert.LessOrEqual(t, c.X+c.EffectiveRadius, rect.Width+1e-9, "circle %d right of the wall", i)
		assert.GreaterOrEqual(t, c.Y-c.EffectiveRadius, -1e-9, "circle %d below the floor", i)
		assert.LessOrEqual(t, c.Y+c.EffectiveRadius, rect.Height+1e-9, "circle %d above the ceiling", i)
		for j := i + 1; j < len(result.Circles); j++ {
			o := result.Circles[j]
			d := math.Hypot(c.X-o.X, c.Y-o.Y)
			assert.GreaterOrEqual(t, d, c.EffectiveRadius+o.EffectiveRadius-overlapEpsilon, "circles %d and %d overlap", i, j)
		}
	}
}

func TestPack_GridEquivalent(t *testing.T) {
	rect := model.Rectangle{Width: 100, Height: 100}

	result := Pack([]model.PackingTemplate{circleTemplate("a", 30, 1)}, rect, PackOptions{})

	assert.GreaterOrEqual(t, result.Placed(), 9)
	assert.Equal(t, result.Placed(), result.Counts["a"])
	assertValidLayout(t, result, rect)
}

func TestPack_WeightCapacity(t *testing.T) {
	rect := model.Rectangle{Width: 500, Height: 500}

	result := Pack([]model.PackingTemplate{circleTemplate("a", 20, 30)}, rect, PackOptions{WeightCapacity: 100})

	assert.Equal(t, 3, result.Placed())
	assert.InDelta(t, 90.0, result.TotalWeight, 1e-9)
	assert.True(t, result.WeightCapacityExceeded)
}

func TestPack_ZeroWeightCapacityIsUnlimited(t *testing.T) {
	rect := model.Rectangle{Width: 100, Height: 100}

	result := Pack([]model.PackingTemplate{circleTemplate("a", 30, 1000)}, rect, PackOptions{})

	assert.False(t, result.WeightCapacityExceeded)
	assert.GreaterOrEqual(t, result.Placed(), 9)
}

func TestPack_InvalidRectangle(t *testing.T) {
	result := Pack([]model.PackingTemplate{circleTemplate("a", 10, 1)}, model.Rectangle{Width: 0, Height: 50}, PackOptions{})

	assert.Empty(t, result.Circles)
	assert.NotEmpty(t, result.Failure)
}

func TestPack_OversizedTemplateNeverPlaced(t *testing.T) {
	rect := model.Rectangle{Width: 100, Height: 50}
	templates := []model.PackingTemplate{
		circleTemplate("big", 60, 1),
		circleTemplate("small", 20, 1),
	}

	result := Pack(templates, rect, PackOptions{})

	assert.Equal(t, 0, result.Counts["big"])
	assert.Positive(t, result.Counts["small"])
	assert.Empty(t, result.Failure)
}

func TestPack_NonPositiveDiameterNeverPlaced(t *testing.T) {
	result := Pack([]model.PackingTemplate{circleTemplate("zero", 0, 1)}, model.Rectangle{Width: 10, Height: 10}, PackOptions{})

	assert.Equal(t, 0, result.Placed())
}

func TestPack_SpacingSeparatesCircles(t *testing.T) {
	rect := model.Rectangle{Width: 200, Height: 120}
	spacing := 2.0

	result := Pack([]model.PackingTemplate{circleTemplate("a", 20, 1)}, rect, PackOptions{Spacing: spacing})

	require.NotEmpty(t, result.Circles)
	for i, c := range result.Circles {
		assert.InDelta(t, 11.0, c.EffectiveRadius, 1e-9)
		for j := i + 1; j < len(result.Circles); j++ {
			o := result.Circles[j]
			gap := math.Hypot(c.X-o.X, c.Y-o.Y) - c.Radius - o.Radius
			assert.GreaterOrEqual(t, gap, spacing-overlapEpsilon)
		}
	}
	assertValidLayout(t, result, rect)
}

func TestPack_RoundRobinPlacesEveryTemplate(t *testing.T) {
	rect := model.Rectangle{Width: 235, Height: 239}
	templates := []model.PackingTemplate{
		circleTemplate("small", 11, 1),
		circleTemplate("large", 50, 1),
		circleTemplate("medium", 25, 1),
	}

	result := Pack(templates, rect, PackOptions{Spacing: 0.5})

	for _, tmpl := range templates {
		assert.Positive(t, result.Counts[tmpl.ID], tmpl.ID)
	}
	assertValidLayout(t, result, rect)
}

func TestPack_FirstCircleAtOrigin(t *testing.T) {
	result := Pack([]model.PackingTemplate{circleTemplate("a", 10, 1)}, model.Rectangle{Width: 10, Height: 10}, PackOptions{})

	require.Len(t, result.Circles, 1)
	assert.Equal(t, 5.0, result.Circles[0].X)
	assert.Equal(t, 5.0, result.Circles[0].Y)
}

func TestPack_RoundCap(t *testing.T) {
	result := Pack([]model.PackingTemplate{circleTemplate("a", 10, 1)}, model.Rectangle{Width: 100, Height: 100}, PackOptions{MaxRounds: 3})

	assert.Equal(t, 3, result.Placed())
	assert.Equal(t, 3, result.Rounds)
	assert.True(t, result.Truncated)
}

func TestPack_NotTruncatedWhenFull(t *testing.T) {
	result := Pack([]model.PackingTemplate{circleTemplate("a", 50, 1)}, model.Rectangle{Width: 100, Height: 100}, PackOptions{MaxRounds: 10})

	assert.Equal(t, 4, result.Placed())
	assert.False(t, result.Truncated)
}

func TestPacker_FloorOrder(t *testing.T) {
	p := newPacker([]model.PackingTemplate{circleTemplate("a", 10, 1)}, model.Rectangle{Width: 100, Height: 100}, PackOptions{}, modeNook)
	p.add(model.PlacedCircle{X: 50, Y: 40, EffectiveRadius: 5})
	p.add(model.PlacedCircle{X: 10, Y: 10, EffectiveRadius: 10})
	p.add(model.PlacedCircle{X: 80, Y: 30, EffectiveRadius: 25})
	p.add(model.PlacedCircle{X: 30, Y: 20, EffectiveRadius: 10})

	assert.Equal(t, []int{1, 2, 3, 0}, p.byFloor)
}

func TestPack_Deterministic(t *testing.T) {
	rect := model.Rectangle{Width: 235, Height: 239}
	templates := []model.PackingTemplate{
		circleTemplate("a", 31.5, 10),
		circleTemplate("b", 16, 5),
		circleTemplate("c", 11, 2),
	}

	first := Pack(templates, rect, PackOptions{Spacing: 0.5})
	second := Pack(templates, rect, PackOptions{Spacing: 0.5})

	assert.Equal(t, first, second)
}

func TestPack_DoesNotModifyInput(t *testing.T) {
	templates := []model.PackingTemplate{
		circleTemplate("small", 10, 1),
		circleTemplate("large", 40, 1),
	}
	before := append([]model.PackingTemplate(nil), templates...)

	Pack(templates, model.Rectangle{Width: 100, Height: 100}, PackOptions{})

	assert.Equal(t, before, templates)
}

func TestPack_ValidLayoutProperties(t *testing.T) {
	cases := []struct {
		rect      model.Rectangle
		diameters []float64
		spacing   float64
	}{
		{model.Rectangle{Width: 100, Height: 100}, []float64{30}, 0},
		{model.Rectangle{Width: 235, Height: 239}, []float64{40, 25, 11}, 0.5},
		{model.Rectangle{Width: 120, Height: 60}, []float64{17, 13, 9, 5}, 1},
		{model.Rectangle{Width: 80, Height: 200}, []float64{33, 33, 21}, 0},
		{model.Rectangle{Width: 50, Height: 50}, []float64{7}, 0.25},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case%d", i), func(t *testing.T) {
			templates := make([]model.PackingTemplate, len(tc.diameters))
			for k, d := range tc.diameters {
				templates[k] = circleTemplate(fmt.Sprintf("t%d", k), d, 1)
			}
			result := Pack(templates, tc.rect, PackOptions{Spacing: tc.spacing})
			require.NotEmpty(t, result.Circles)
			assertValidLayout(t, result, tc.rect)

			total := 0
			for _, n := range result.Counts {
				total += n
			}
			assert.Equal(t, result.Placed(), total)
		})
	}
}

func TestGridCapacity(t *testing.T) {
	assert.Equal(t, 9, GridCapacity(model.Rectangle{Width: 100, Height: 100}, 30))
	assert.Equal(t, 0, GridCapacity(model.Rectangle{Width: 100, Height: 100}, 0))
	assert.Equal(t, 0, GridCapacity(model.Rectangle{Width: 0, Height: 100}, 10))
	assert.Equal(t, 21*21, GridCapacity(model.Rectangle{Width: 235, Height: 239}, 11))
}

func TestSpatialGridNear(t *testing.T) {
	g := newSpatialGrid(10)
	points := []r2.Vec{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 95, Y: 95}}
	for i, p := range points {
		g.insert(i, p)
	}

	var seen []int
	g.near(r2.Vec{X: 6, Y: 6}, 5, func(idx int) { seen = append(seen, idx) })

	assert.Contains(t, seen, 0)
	assert.Contains(t, seen, 1)
	assert.NotContains(t, seen, 2)
}
