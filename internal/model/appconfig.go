package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default calculation settings applied to new projects
	DefaultMinSpace        float64 `json:"default_min_space"` // cm
	DefaultAllowance       float64 `json:"default_allowance"` // cm
	DefaultGridFastPath    bool    `json:"default_grid_fast_path"`
	DefaultContainerPreset string  `json:"default_container_preset"`
	DefaultPrice           float64 `json:"default_price"` // Per container

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMinSpace:        defaults.MinSpace,
		DefaultAllowance:       defaults.Allowance,
		DefaultGridFastPath:    defaults.GridFastPath,
		DefaultContainerPreset: DefaultContainerPreset,
		DefaultPrice:           defaults.PricePerContainer,
		RecentProjects:         []string{},
		Theme:                  "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.MinSpace = c.DefaultMinSpace
	s.Allowance = c.DefaultAllowance
	s.GridFastPath = c.DefaultGridFastPath
	s.PricePerContainer = c.DefaultPrice
}

// NewContainer returns the configured default container, falling back to
// the built-in default when the preset name is unknown.
func (c AppConfig) NewContainer() Container {
	if p, ok := GetContainerPreset(c.DefaultContainerPreset); ok {
		return p.ToContainer()
	}
	return DefaultContainer()
}

// maxRecentProjects caps the recent projects list.
const maxRecentProjects = 10

// AddRecentProject moves path to the front of the recent list.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
