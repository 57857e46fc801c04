package model

// ContainerPreset describes a standard transport volume.
type ContainerPreset struct {
	Name           string  `json:"name"`
	Width          float64 `json:"width"`           // Inner width, cm
	Height         float64 `json:"height"`          // Inner height, cm
	Length         float64 `json:"length"`          // Inner length, cm
	WeightCapacity float64 `json:"weight_capacity"` // Max payload, kg
}

// ToContainer converts the preset into a Container with a fresh ID.
func (cp ContainerPreset) ToContainer() Container {
	return NewContainer(cp.Name, cp.Width, cp.Height, cp.Length, cp.WeightCapacity)
}

// ContainerPresets contains built-in inner dimensions and payloads of common
// ISO containers and road trailers.
var ContainerPresets = []ContainerPreset{
	{Name: "20ft Standard", Width: 235, Height: 239, Length: 590, WeightCapacity: 28200},
	{Name: "40ft Standard", Width: 235, Height: 239, Length: 1203, WeightCapacity: 26700},
	{Name: "40ft High Cube", Width: 235, Height: 269, Length: 1203, WeightCapacity: 26500},
	{Name: "20ft Open Top", Width: 235, Height: 235, Length: 589, WeightCapacity: 28100},
	{Name: "13.6m Tautliner", Width: 248, Height: 270, Length: 1360, WeightCapacity: 24000},
	{Name: "7.7m Swap Body", Width: 248, Height: 270, Length: 772, WeightCapacity: 16000},
}

// DefaultContainerPreset is used for new projects.
const DefaultContainerPreset = "40ft Standard"

// GetContainerPreset returns a preset by name, or false when none matches.
func GetContainerPreset(name string) (ContainerPreset, bool) {
	for _, p := range ContainerPresets {
		if p.Name == name {
			return p, true
		}
	}
	return ContainerPreset{}, false
}

// ContainerPresetNames returns a list of preset names for UI dropdowns.
func ContainerPresetNames() []string {
	names := make([]string, len(ContainerPresets))
	for i, p := range ContainerPresets {
		names[i] = p.Name
	}
	return names
}

// DefaultContainer returns the container used by new projects.
func DefaultContainer() Container {
	p, _ := GetContainerPreset(DefaultContainerPreset)
	return p.ToContainer()
}
