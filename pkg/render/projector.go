package render

import (
	"math"

	"github.com/taigrr/trimap/pkg/math3d"
)

// ScreenPoint is a position in surface pixels, origin top-left.
type ScreenPoint struct {
	X, Y float64
}

// Projector maps camera-space points onto a surface of fixed size.
// The vertical field of view follows from the height alone: a point at depth
// X spans Height/2 pixels per unit of lateral offset divided by X.
type Projector struct {
	Width  int
	Height int
}

// NewProjector creates a projector for a width x height surface.
func NewProjector(width, height int) Projector {
	return Projector{Width: width, Height: height}
}

// Project transforms p with t and projects the result. It reports false when
// the point is on or behind the camera plane, or has a NaN coordinate.
// Off-screen results are returned as-is.
func (p Projector) Project(t math3d.Transform, pt math3d.Vec3) (ScreenPoint, bool) {
	return p.ProjectLocal(t.Apply(pt))
}

// ProjectLocal projects a point already in camera space.
func (p Projector) ProjectLocal(v math3d.Vec3) (ScreenPoint, bool) {
	if !(v.X > 0) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
		return ScreenPoint{}, false
	}
	w, h := float64(p.Width), float64(p.Height)
	k := h / 2 / v.X
	return ScreenPoint{
		X: k*v.Y + w/2,
		Y: h - (k*v.Z + h/2),
	}, true
}
