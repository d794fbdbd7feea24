package theme

import (
	"image/color"
	"runtime"

	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Palette defines the application colors.
type Palette struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Primary    color.NRGBA
	Text       color.NRGBA
	TextMuted  color.NRGBA
	Border     color.NRGBA
	Recording  color.NRGBA
	Warning    color.NRGBA
	Error      color.NRGBA
	Scrim      color.NRGBA
}

// Config defines the layout metrics.
type Config struct {
	CornerRadius unit.Dp
	Spacing      unit.Dp
	Padding      unit.Dp
	FontTitle    unit.Sp
	FontBody     unit.Sp
	FontCaption  unit.Sp
}

// Theme wraps the material theme with application styling.
type Theme struct {
	*material.Theme
	Palette Palette
	Config  Config
}

// NewTheme creates a theme with metrics tuned for the current OS.
func NewTheme(mtheme *material.Theme) *Theme {
	t := &Theme{
		Theme: mtheme,
		Palette: Palette{
			Background: color.NRGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF},
			Surface:    color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
			Primary:    color.NRGBA{R: 0x2F, G: 0x6F, B: 0xD6, A: 0xFF},
			Text:       color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
			TextMuted:  color.NRGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xFF},
			Border:     color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF},
			Recording:  color.NRGBA{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF},
			Warning:    color.NRGBA{R: 0xE6, G: 0x8A, B: 0x00, A: 0xFF},
			Error:      color.NRGBA{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF},
			Scrim:      color.NRGBA{A: 0x99},
		},
	}

	switch runtime.GOOS {
	case "darwin":
		t.Config = Config{
			CornerRadius: unit.Dp(10),
			Spacing:      unit.Dp(10),
			Padding:      unit.Dp(14),
			FontTitle:    unit.Sp(18),
			FontBody:     unit.Sp(13),
			FontCaption:  unit.Sp(11),
		}
	default:
		t.Config = Config{
			CornerRadius: unit.Dp(4),
			Spacing:      unit.Dp(8),
			Padding:      unit.Dp(12),
			FontTitle:    unit.Sp(18),
			FontBody:     unit.Sp(14),
			FontCaption:  unit.Sp(12),
		}
	}

	return t
}
