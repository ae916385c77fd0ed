// Package render projects terrain triangles through a camera and paints them
// back to front onto 2D surfaces, including a terminal presentation.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

// Framebuffer is an in-memory RGBA Surface.
// Terminal presentation uses half-block characters (▀), so the buffer height
// is twice the number of terminal rows.
type Framebuffer struct {
	Width  int
	Height int

	img    *image.RGBA
	raster *vector.Rasterizer

	// Current path as a list of subpaths.
	paths [][]ScreenPoint
	// closed[i] reports whether paths[i] was closed with ClosePath.
	closed []bool
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
	}
}

// Size returns the buffer dimensions in pixels.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	pix := fb.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.img.SetRGBA(x, y, c)
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.img.RGBAAt(x, y)
}

// BlendPixel composites c over the pixel at (x, y).
func (fb *Framebuffer) BlendPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	if c.A == 255 {
		fb.img.SetRGBA(x, y, c)
		return
	}
	fb.img.SetRGBA(x, y, blend(fb.img.RGBAAt(x, y), c))
}

// blend composites src over dst. Colors are alpha-premultiplied, as with
// the fill path.
func blend(dst, src color.RGBA) color.RGBA {
	ia := 255 - uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8(min(uint32(s)+(uint32(d)*ia+127)/255, 255))
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: mix(dst.A, src.A),
	}
}

// BeginPath discards the current path.
func (fb *Framebuffer) BeginPath() {
	fb.paths = fb.paths[:0]
	fb.closed = fb.closed[:0]
}

// MoveTo starts a new subpath at (x, y).
func (fb *Framebuffer) MoveTo(x, y float64) {
	fb.paths = append(fb.paths, []ScreenPoint{{x, y}})
	fb.closed = append(fb.closed, false)
}

// LineTo extends the current subpath. Without one it behaves as MoveTo.
func (fb *Framebuffer) LineTo(x, y float64) {
	if len(fb.paths) == 0 {
		fb.MoveTo(x, y)
		return
	}
	last := len(fb.paths) - 1
	fb.paths[last] = append(fb.paths[last], ScreenPoint{x, y})
}

// ClosePath marks the current subpath closed.
func (fb *Framebuffer) ClosePath() {
	if n := len(fb.closed); n > 0 {
		fb.closed[n-1] = true
	}
}

// Fill paints the interior of every subpath with c (nonzero winding,
// antialiased edges). Subpaths are implicitly closed.
func (fb *Framebuffer) Fill(c color.RGBA) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	bounds := clipRect{0, 0, float64(fb.Width), float64(fb.Height)}
	fb.raster.Reset(fb.Width, fb.Height)
	drawn := false
	for _, sub := range fb.paths {
		if !finite(sub) {
			continue
		}
		poly := bounds.clipPolygon(sub)
		if len(poly) < 3 {
			continue
		}
		fb.raster.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, p := range poly[1:] {
			fb.raster.LineTo(float32(p.X), float32(p.Y))
		}
		fb.raster.ClosePath()
		drawn = true
	}
	if drawn {
		fb.raster.Draw(fb.img, fb.img.Bounds(), image.NewUniform(c), image.Point{})
	}
}

// Stroke draws one-pixel outlines of every subpath in c, composited over
// the existing pixels.
func (fb *Framebuffer) Stroke(c color.RGBA) {
	if fb.Width == 0 || fb.Height == 0 || c.A == 0 {
		return
	}
	bounds := clipRect{0, 0, float64(fb.Width - 1), float64(fb.Height - 1)}
	for i, sub := range fb.paths {
		if !finite(sub) {
			continue
		}
		n := len(sub)
		segs := n - 1
		if fb.closed[i] && n > 2 {
			segs = n
		}
		for s := range segs {
			a, b := sub[s], sub[(s+1)%n]
			a, b, ok := bounds.clipSegment(a, b)
			if !ok {
				continue
			}
			// Skip the end pixel of all but open-path final segments so
			// translucent corners are not blended twice.
			last := !fb.closed[i] && s == segs-1
			fb.drawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), c, last)
		}
	}
}

// drawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. The end pixel is drawn only when inclusive is set.
func (fb *Framebuffer) drawLine(x0, y0, x1, y1 int, c color.RGBA, inclusive bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 == x1 && y0 == y1 {
			if inclusive {
				fb.BlendPixel(x0, y0, c)
			}
			break
		}
		fb.BlendPixel(x0, y0, c)
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func round(v float64) int {
	return int(math.Round(v))
}

func finite(pts []ScreenPoint) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// ToImage returns a copy of the framebuffer as a standard Go image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.img.Rect)
	copy(img.Pix, fb.img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	if err := png.Encode(f, fb.img); err != nil {
		f.Close()
		return fmt.Errorf("save png: %w", err)
	}
	return f.Close()
}
