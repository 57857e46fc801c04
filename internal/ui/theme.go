// Package ui provides the PipeLoad desktop application.
//
// This file defines a custom compact Fyne theme for a dense layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PipeLoadTheme wraps the default Fyne theme with compact sizing overrides
// for an information-dense planning layout.
type PipeLoadTheme struct {
	base         fyne.Theme
	variant      fyne.ThemeVariant
	followSystem bool
}

// NewPipeLoadTheme creates a new PipeLoadTheme with the system default variant.
func NewPipeLoadTheme() *PipeLoadTheme {
	return &PipeLoadTheme{
		base:         theme.DefaultTheme(),
		followSystem: true,
	}
}

// NewPipeLoadThemeWithVariant creates a PipeLoadTheme with a specific light/dark variant.
func NewPipeLoadThemeWithVariant(variant fyne.ThemeVariant) *PipeLoadTheme {
	return &PipeLoadTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// SetVariant pins the theme to a light or dark variant.
func (t *PipeLoadTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.followSystem = false
}

// Color delegates to the base theme with the pinned variant, or the
// requested one when following the system.
func (t *PipeLoadTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.followSystem {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// ForName builds the theme for a configured theme name.
func ForName(name string) *PipeLoadTheme {
	if v, ok := ThemeVariant(name); ok {
		return NewPipeLoadThemeWithVariant(v)
	}
	return NewPipeLoadTheme()
}

// Font delegates to the base theme.
func (t *PipeLoadTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PipeLoadTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PipeLoadTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}

// ThemeVariant maps the configured theme name to a variant. The second
// result is false for "system", which follows the OS preference.
func ThemeVariant(name string) (fyne.ThemeVariant, bool) {
	switch name {
	case "dark":
		return theme.VariantDark, true
	case "light":
		return theme.VariantLight, true
	default:
		return 0, false
	}
}
