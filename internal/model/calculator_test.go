package model

import (
	"math"
	"testing"
)

func TestCalculateLoadEstimateBasic(t *testing.T) {
	p := NewPipe("P1", 10, 8, 500, 50, 2)
	c := NewContainer("box", 100, 100, 500, 0)

	est := CalculateLoadEstimate([]Pipe{p}, nil, c, 1, 1200)

	if est.TotalPieces != 10 {
		t.Errorf("expected 10 pieces, got %d", est.TotalPieces)
	}
	if math.Abs(est.TotalWeight-100) > 1e-9 {
		t.Errorf("expected total weight 100, got %f", est.TotalWeight)
	}
	expectedVolume := 10 * 10.0 * 10 * 500
	if math.Abs(est.BoundingVolume-expectedVolume) > 1e-6 {
		t.Errorf("expected bounding volume %f, got %f", expectedVolume, est.BoundingVolume)
	}
	if est.MinContainersVolume != 1 {
		t.Errorf("expected 1 container by volume, got %d", est.MinContainersVolume)
	}
	if est.EstimatedCost != 1200 {
		t.Errorf("expected cost 1200, got %f", est.EstimatedCost)
	}
	if math.Abs(est.VolumeUtilization-10) > 1e-9 {
		t.Errorf("expected 10%% utilization, got %f", est.VolumeUtilization)
	}
}

func TestCalculateLoadEstimateNestedOnlyCountsSurplus(t *testing.T) {
	outer := NewPipe("outer", 20, 18, 200, 20, 1) // 10 pieces
	inner := NewPipe("inner", 15, 13, 150, 18, 1) // 12 pieces
	c := NewContainer("box", 100, 100, 200, 0)

	est := CalculateLoadEstimate([]Pipe{outer, inner}, map[string]string{inner.ID: outer.ID}, c, 1, 0)

	expected := 10*20.0*20*200 + 2*15.0*15*150
	if math.Abs(est.BoundingVolume-expected) > 1e-6 {
		t.Errorf("expected bounding volume %f, got %f", expected, est.BoundingVolume)
	}
	if est.TotalPieces != 22 {
		t.Errorf("expected 22 pieces, got %d", est.TotalPieces)
	}
}

func TestCalculateLoadEstimateZeroVolume(t *testing.T) {
	p := NewPipe("P1", 10, 8, 500, 50, 2)
	est := CalculateLoadEstimate([]Pipe{p}, nil, Container{}, 0, 100)
	if est.ContainersByVolume != 0 || est.MinContainersVolume != 0 {
		t.Error("expected no volume bound for zero container")
	}
	if est.EstimatedCost != 0 {
		t.Errorf("expected zero cost, got %f", est.EstimatedCost)
	}
}
