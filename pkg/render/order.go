package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/trimap/pkg/math3d"
	"github.com/taigrr/trimap/pkg/terrain"
)

// Projected is a triangle that survived projection, with its screen corners
// and the distance from its world centroid to the camera.
type Projected struct {
	Triangle terrain.Triangle
	Screen   [3]ScreenPoint
	Distance float64
}

// Order projects every triangle, drops any with a vertex behind the camera,
// and sorts the rest farthest first. Triangles at equal distance keep their
// input order. This is a painter's approximation: interpenetrating or
// cyclically overlapping faces can still draw in the wrong order.
func Order(tris []terrain.Triangle, t math3d.Transform, proj Projector, camPos math3d.Vec3) []Projected {
	return AppendOrdered(nil, tris, t, proj, camPos)
}

// AppendOrdered is Order writing into dst[:0], so a frame loop can reuse
// one slice.
func AppendOrdered(dst []Projected, tris []terrain.Triangle, t math3d.Transform, proj Projector, camPos math3d.Vec3) []Projected {
	out := dst[:0]
	for _, tri := range tris {
		var screen [3]ScreenPoint
		visible := true
		for i, v := range tri.V {
			sp, ok := proj.Project(t, v)
			if !ok {
				visible = false
				break
			}
			screen[i] = sp
		}
		if !visible {
			continue
		}
		out = append(out, Projected{
			Triangle: tri,
			Screen:   screen,
			Distance: tri.Centroid().Distance(camPos),
		})
	}

	slices.SortStableFunc(out, func(a, b Projected) int {
		return cmp.Compare(b.Distance, a.Distance)
	})
	return out
}
