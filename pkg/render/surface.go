package render

import "image/color"

// Surface is a 2D drawing target with a canvas-style path API.
// Coordinates are pixels from the top-left corner and may fall outside
// the surface; implementations clip.
type Surface interface {
	Clear(c color.RGBA)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill(c color.RGBA)
	Stroke(c color.RGBA)
	Size() (width, height int)
}
