package terrain

import (
	"fmt"
	"image/color"
)

// Terrain codes understood by the default palette.
const (
	CodeOpen byte = ' '
	CodeWall byte = 'x'
	CodePath byte = 'r'
)

// Palette maps terrain codes to fill colors.
type Palette struct {
	Colors   map[byte]color.RGBA
	Fallback color.RGBA // used for codes missing from Colors
}

// DefaultPalette returns the stock colors: pink open ground, blue walls,
// yellow paths and magenta for anything unknown.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[byte]color.RGBA{
			CodeOpen: {255, 192, 203, 255},
			CodeWall: {0, 0, 255, 255},
			CodePath: {255, 255, 0, 255},
		},
		Fallback: color.RGBA{255, 0, 255, 255},
	}
}

// Lookup returns the color for code. ok is false when the fallback was used.
func (p Palette) Lookup(code byte) (c color.RGBA, ok bool) {
	c, ok = p.Colors[code]
	if !ok {
		return p.Fallback, false
	}
	return c, true
}

// With returns a copy of p with code mapped to c.
func (p Palette) With(code byte, c color.RGBA) Palette {
	colors := make(map[byte]color.RGBA, len(p.Colors)+1)
	for k, v := range p.Colors {
		colors[k] = v
	}
	colors[code] = c
	return Palette{Colors: colors, Fallback: p.Fallback}
}

// ParseRGB parses an "R,G,B" triple into an opaque color.
func ParseRGB(s string) (color.RGBA, error) {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("parse color %q: component %d out of range", s, v)
		}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}
