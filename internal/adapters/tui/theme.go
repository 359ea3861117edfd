package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// applyAppearance forces the background detection for explicit light or
// dark preferences. ThemeSystem leaves terminal detection alone.
func applyAppearance(t domain.Theme) {
	switch t {
	case domain.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case domain.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// categoryHex returns the accent color for a mode category.
func categoryHex(theme config.ThemeConfig, c domain.Category) string {
	switch c {
	case domain.CategoryWellness:
		return theme.ColorWellness
	case domain.CategoryFitness:
		return theme.ColorFitness
	case domain.CategoryTools:
		return theme.ColorTools
	default:
		return theme.ColorFocus
	}
}

// accent returns the clock color. Paused clocks fade toward the paused
// color instead of switching to it outright.
func accent(theme config.ThemeConfig, c domain.Category, running bool) lipgloss.Color {
	hex := categoryHex(theme, c)
	if running {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(blend(hex, theme.ColorPaused, 0.6))
}

// blend mixes two hex colors in Lab space. Unparseable input returns a
// unchanged.
func blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}
