// Package colorutil provides shared color utilities.
package colorutil

import (
	"fmt"
	"image/color"
)

// ParseHex parses a #RRGGBB accent string into an opaque NRGBA color.
func ParseHex(s string) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	var v [6]uint8
	for i := 0; i < 6; i++ {
		c := s[i+1]
		switch {
		case c >= '0' && c <= '9':
			v[i] = c - '0'
		case c >= 'a' && c <= 'f':
			v[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v[i] = c - 'A' + 10
		default:
			return color.NRGBA{}, fmt.Errorf("color %q is not #RRGGBB", s)
		}
	}
	return color.NRGBA{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
		A: 0xFF,
	}, nil
}

// FormatHex renders a color as #RRGGBB, dropping alpha.
func FormatHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// WithAlpha returns the color with its alpha replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
