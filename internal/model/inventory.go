package model

import "github.com/google/uuid"

// PipePreset represents a reusable catalog pipe size.
type PipePreset struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Material         string  `json:"material"`
	ExternalDiameter float64 `json:"external_diameter"` // cm
	InternalDiameter float64 `json:"internal_diameter"` // cm
	Length           float64 `json:"length"`            // cm
	WeightPerMeter   float64 `json:"weight_per_meter"`  // kg/m
}

// NewPipePreset creates a new PipePreset with a generated ID.
func NewPipePreset(name, material string, external, internal, length, weightPerMeter float64) PipePreset {
	return PipePreset{
		ID:               uuid.New().String()[:8],
		Name:             name,
		Material:         material,
		ExternalDiameter: external,
		InternalDiameter: internal,
		Length:           length,
		WeightPerMeter:   weightPerMeter,
	}
}

// ToPipe converts a PipePreset into a Pipe ordering the given quantity.
func (pp PipePreset) ToPipe(quantityMeters float64) Pipe {
	return NewPipe(pp.Name, pp.ExternalDiameter, pp.InternalDiameter, pp.Length, quantityMeters, pp.WeightPerMeter)
}

// Inventory holds the user's saved pipe catalog and custom containers.
type Inventory struct {
	Pipes      []PipePreset      `json:"pipes"`
	Containers []ContainerPreset `json:"containers"`
}

// DefaultInventory returns an inventory populated with common PE, PVC and steel sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Pipes: []PipePreset{
			NewPipePreset("PE100 SDR11 Ø110", "PE", 11.0, 9.0, 1200, 3.35),
			NewPipePreset("PE100 SDR11 Ø160", "PE", 16.0, 13.08, 1200, 7.0),
			NewPipePreset("PE100 SDR11 Ø250", "PE", 25.0, 20.46, 1200, 17.0),
			NewPipePreset("PE100 SDR17 Ø315", "PE", 31.5, 27.8, 1200, 18.0),
			NewPipePreset("PE100 SDR17 Ø400", "PE", 40.0, 35.3, 1200, 29.0),
			NewPipePreset("PVC-U SN4 Ø200", "PVC", 20.0, 18.8, 500, 5.5),
			NewPipePreset("PVC-U SN4 Ø315", "PVC", 31.5, 29.66, 500, 13.4),
			NewPipePreset("Steel DN100", "Steel", 11.43, 10.25, 600, 12.2),
			NewPipePreset("Steel DN200", "Steel", 21.91, 20.27, 600, 42.5),
		},
		Containers: []ContainerPreset{},
	}
}

// FindPipeByID returns a pointer to the pipe preset with the given ID, or nil.
func (inv *Inventory) FindPipeByID(id string) *PipePreset {
	for i := range inv.Pipes {
		if inv.Pipes[i].ID == id {
			return &inv.Pipes[i]
		}
	}
	return nil
}

// FindPipeByName returns a pointer to the first pipe preset with the given name, or nil.
func (inv *Inventory) FindPipeByName(name string) *PipePreset {
	for i := range inv.Pipes {
		if inv.Pipes[i].Name == name {
			return &inv.Pipes[i]
		}
	}
	return nil
}

// PipeNames returns a list of pipe preset names for UI dropdowns.
func (inv *Inventory) PipeNames() []string {
	names := make([]string, len(inv.Pipes))
	for i, p := range inv.Pipes {
		names[i] = p.Name
	}
	return names
}

// AllContainers returns the built-in presets followed by the user's own.
func (inv *Inventory) AllContainers() []ContainerPreset {
	all := make([]ContainerPreset, 0, len(ContainerPresets)+len(inv.Containers))
	all = append(all, ContainerPresets...)
	return append(all, inv.Containers...)
}

// ContainerNames returns the names of AllContainers for UI dropdowns.
func (inv *Inventory) ContainerNames() []string {
	all := inv.AllContainers()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}

// FindContainerByName searches custom containers first, then the built-in presets.
func (inv *Inventory) FindContainerByName(name string) (ContainerPreset, bool) {
	for _, c := range inv.Containers {
		if c.Name == name {
			return c, true
		}
	}
	return GetContainerPreset(name)
}
