package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// KeycapTheme is the application theme: dark keycap plastic with an amber
// accent.
type KeycapTheme struct{}

var _ fyne.Theme = (*KeycapTheme)(nil)

func (t *KeycapTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xF5, G: 0xA6, B: 0x23, A: 0xFF}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 0x2B, G: 0x2B, B: 0x2B, A: 0xFF} // keycap side
		}
		return theme.DefaultTheme().Color(name, variant)
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xF5, G: 0xA6, B: 0x23, A: 0x60}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *KeycapTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *KeycapTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *KeycapTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	default:
		return theme.DefaultTheme().Size(name)
	}
}
