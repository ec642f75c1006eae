package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SearchTheme is the default theme with a blue accent for the primary button.
type SearchTheme struct{}

var _ fyne.Theme = (*SearchTheme)(nil)

func (t *SearchTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return color.NRGBA{R: 0x3A, G: 0x6E, B: 0xA5, A: 0xFF}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *SearchTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *SearchTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *SearchTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
