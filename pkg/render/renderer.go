package render

import "image/color"

// Renderer paints ordered triangles onto a Surface.
type Renderer struct {
	Background color.RGBA
	Border     color.RGBA

	// Wireframe outlines each triangle in its own color instead of filling.
	Wireframe bool
}

// NewRenderer creates a renderer with the default background and a
// translucent dark border.
func NewRenderer() *Renderer {
	return &Renderer{
		Background: ColorBackground,
		Border:     ColorBorder,
	}
}

// Render clears s and draws tris in slice order, so the caller's ordering
// decides which faces end up on top.
func (r *Renderer) Render(s Surface, tris []Projected) {
	s.Clear(r.Background)
	for i := range tris {
		p := &tris[i]
		s.BeginPath()
		s.MoveTo(p.Screen[0].X, p.Screen[0].Y)
		s.LineTo(p.Screen[1].X, p.Screen[1].Y)
		s.LineTo(p.Screen[2].X, p.Screen[2].Y)
		s.ClosePath()
		if r.Wireframe {
			s.Stroke(p.Triangle.Color)
			continue
		}
		s.Fill(p.Triangle.Color)
		s.Stroke(r.Border)
	}
}
