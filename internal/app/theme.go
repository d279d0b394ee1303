package app

import (
	"image/color"

	"hat-studio/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// BrandTheme tints the default theme with the active brand's accent color.
type BrandTheme struct {
	Accent color.NRGBA
}

var _ fyne.Theme = (*BrandTheme)(nil)

// NewBrandTheme creates a theme from a #RRGGBB accent string. An
// unparsable accent falls back to the default primary color.
func NewBrandTheme(accent string) *BrandTheme {
	t := &BrandTheme{Accent: color.NRGBA{R: 0x3F, G: 0x51, B: 0xB5, A: 0xFF}}
	if c, err := colorutil.ParseHex(accent); err == nil {
		t.Accent = c
	}
	return t
}

func (t *BrandTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return t.Accent
	case theme.ColorNameSelection:
		return colorutil.WithAlpha(t.Accent, 0x80)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *BrandTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *BrandTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *BrandTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
