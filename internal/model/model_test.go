package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestPipeUnitWeight(t *testing.T) {
	p := NewPipe("PE 110", 11, 9, 600, 60, 3.5)
	if got := p.UnitWeight(); math.Abs(got-21) > 1e-9 {
		t.Errorf("expected unit weight 21, got %f", got)
	}
}

func TestPipePieceCount(t *testing.T) {
	tests := []struct {
		name     string
		length   float64
		quantity float64
		want     int
	}{
		{"exact", 600, 60, 10},
		{"rounds up", 600, 61, 11},
		{"zero length", 0, 60, 0},
		{"zero quantity", 600, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pipe{Length: tt.length, QuantityMeters: tt.quantity}
			if got := p.PieceCount(); got != tt.want {
				t.Errorf("expected %d pieces, got %d", tt.want, got)
			}
		})
	}
}

func TestPipeValidate(t *testing.T) {
	valid := NewPipe("ok", 20, 18, 200, 10, 1)
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid pipe, got %v", err)
	}

	bad := []Pipe{
		{Label: "no bore", ExternalDiameter: 20, InternalDiameter: 0, Length: 200},
		{Label: "inverted", ExternalDiameter: 18, InternalDiameter: 20, Length: 200},
		{Label: "no length", ExternalDiameter: 20, InternalDiameter: 18},
		{Label: "negative qty", ExternalDiameter: 20, InternalDiameter: 18, Length: 200, QuantityMeters: -1},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidPipe) {
			t.Errorf("%s: expected ErrInvalidPipe, got %v", p.Label, err)
		}
	}
}

func TestContainerValidate(t *testing.T) {
	c := NewContainer("box", 100, 100, 600, 0)
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid container, got %v", err)
	}
	c.Height = 0
	if err := c.Validate(); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("expected ErrInvalidContainer, got %v", err)
	}
	c.Height = 100
	c.WeightCapacity = -5
	if err := c.Validate(); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("expected ErrInvalidContainer for negative capacity, got %v", err)
	}
}

func TestContainerCrossSection(t *testing.T) {
	c := NewContainer("box", 235, 239, 590, 0)
	rect := c.CrossSection()
	if rect.Width != 235 || rect.Height != 239 {
		t.Errorf("unexpected cross-section %+v", rect)
	}
	if !rect.Valid() {
		t.Error("expected valid rectangle")
	}
	if rect.MinSide() != 235 {
		t.Errorf("expected min side 235, got %f", rect.MinSide())
	}
}

func TestTelescopingString(t *testing.T) {
	if TelescopingNone.String() != "None" || TelescopingFull.String() != "Full" || TelescopingPartial.String() != "Partial" {
		t.Error("unexpected telescoping names")
	}
}

func TestTelescopingJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Telescoping{"telescoping": TelescopingPartial})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"telescoping":"partial"}` {
		t.Errorf("unexpected encoding %s", data)
	}

	var decoded map[string]Telescoping
	if err := json.Unmarshal([]byte(`{"a":"full","b":"None"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["a"] != TelescopingFull || decoded["b"] != TelescopingNone {
		t.Errorf("unexpected decoding %v", decoded)
	}

	if err := json.Unmarshal([]byte(`{"a":"sideways"}`), &decoded); err == nil {
		t.Error("expected error for unknown telescoping type")
	}
}

func TestPackingTemplateNested(t *testing.T) {
	single := PackingTemplate{Members: []string{"a"}, Diameter: 10}
	group := PackingTemplate{Members: []string{"a", "b"}}
	if single.Nested() {
		t.Error("single member template should not be nested")
	}
	if !group.Nested() {
		t.Error("two member template should be nested")
	}
	if single.Radius() != 5 {
		t.Errorf("expected radius 5, got %f", single.Radius())
	}
}

func TestPackingResultFillRatio(t *testing.T) {
	pr := PackingResult{Circles: []PlacedCircle{{Radius: 10}}}
	got := pr.FillRatio(Rectangle{Width: 20, Height: 20})
	if math.Abs(got-math.Pi/4) > 1e-9 {
		t.Errorf("expected π/4, got %f", got)
	}
	if pr.FillRatio(Rectangle{}) != 0 {
		t.Error("expected zero fill for empty rectangle")
	}
}

func TestSettingsRoundsFallback(t *testing.T) {
	s := DefaultSettings()
	s.MaxRounds = 0
	if s.Rounds() != DefaultMaxRounds {
		t.Errorf("expected %d rounds, got %d", DefaultMaxRounds, s.Rounds())
	}
}

func TestNewProjectUsesDefaultContainer(t *testing.T) {
	p := NewProject()
	if p.Container.Label != DefaultContainerPreset {
		t.Errorf("expected container %q, got %q", DefaultContainerPreset, p.Container.Label)
	}
	if p.Pipes == nil {
		t.Error("Pipes should not be nil")
	}
}

func TestGetContainerPreset(t *testing.T) {
	p, ok := GetContainerPreset("20ft Standard")
	if !ok {
		t.Fatal("expected 20ft Standard preset")
	}
	if p.Length != 590 {
		t.Errorf("expected length 590, got %f", p.Length)
	}
	if _, ok := GetContainerPreset("nope"); ok {
		t.Error("expected unknown preset to be missing")
	}
	if len(ContainerPresetNames()) != len(ContainerPresets) {
		t.Error("names and presets length mismatch")
	}
}
