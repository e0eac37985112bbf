package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when no theme, or an unknown one, is selected.
const DefaultTheme = "charm"

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"base",
	"base16",
	"catppuccin",
	"charm",
	"dracula",
}

// currentTheme holds the theme for forms; nil means DefaultTheme.
var currentTheme *huh.Theme

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for the given theme name.
// Returns nil if the theme name is not recognized.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "base":
		return huh.ThemeBase()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

// SetTheme sets the current theme by name. Unknown names select DefaultTheme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return GetTheme(DefaultTheme)
	}
	return currentTheme
}

func resetTheme() {
	currentTheme = nil
}
