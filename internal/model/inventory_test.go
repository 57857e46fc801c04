package model

import "testing"

func TestPipePresetToPipe(t *testing.T) {
	pp := NewPipePreset("PE 110", "PE", 11, 9, 1200, 3.35)
	p := pp.ToPipe(120)
	if p.Label != "PE 110" {
		t.Errorf("expected label 'PE 110', got %s", p.Label)
	}
	if p.QuantityMeters != 120 {
		t.Errorf("expected quantity 120, got %f", p.QuantityMeters)
	}
	if p.ID == pp.ID {
		t.Error("pipe should get its own ID")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid pipe, got %v", err)
	}
}

func TestDefaultInventoryPipesAreValid(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Pipes) == 0 {
		t.Fatal("expected default pipe presets")
	}
	for _, pp := range inv.Pipes {
		if err := pp.ToPipe(1).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", pp.Name, err)
		}
	}
}

func TestInventoryFindPipe(t *testing.T) {
	inv := DefaultInventory()
	first := inv.Pipes[0]
	if got := inv.FindPipeByID(first.ID); got == nil || got.Name != first.Name {
		t.Error("expected to find pipe by ID")
	}
	if got := inv.FindPipeByName(first.Name); got == nil {
		t.Error("expected to find pipe by name")
	}
	if inv.FindPipeByID("missing") != nil {
		t.Error("expected nil for missing ID")
	}
	if len(inv.PipeNames()) != len(inv.Pipes) {
		t.Error("names and pipes length mismatch")
	}
}

func TestInventoryContainersIncludeCustom(t *testing.T) {
	inv := DefaultInventory()
	inv.Containers = append(inv.Containers, ContainerPreset{Name: "Flatrack", Width: 240, Height: 200, Length: 1200})

	all := inv.AllContainers()
	if len(all) != len(ContainerPresets)+1 {
		t.Errorf("expected %d containers, got %d", len(ContainerPresets)+1, len(all))
	}
	if c, ok := inv.FindContainerByName("Flatrack"); !ok || c.Width != 240 {
		t.Error("expected to find custom container")
	}
	if _, ok := inv.FindContainerByName("40ft High Cube"); !ok {
		t.Error("expected to find built-in container")
	}
	if len(inv.ContainerNames()) != len(all) {
		t.Error("names and containers length mismatch")
	}
}
