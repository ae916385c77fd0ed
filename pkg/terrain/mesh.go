package terrain

import (
	"image/color"

	"github.com/taigrr/trimap/pkg/math3d"
	"go.uber.org/zap"
)

const (
	// HeightScale divides raw grid heights to get world Z.
	HeightScale = 5.0
	// RowHeight is the height of one equilateral triangle of unit side.
	RowHeight = 0.8660254037844386 // math.Sqrt(3) / 2
)

// Triangle is one colored world-space face generated from a grid cell.
type Triangle struct {
	V     [3]math3d.Vec3
	Color color.RGBA
	Row   int // source cell
	Col   int
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return math3d.Centroid(t.V[0], t.V[1], t.V[2])
}

// Builder converts maps into triangle lists.
type Builder struct {
	Palette Palette
	Log     *zap.Logger
}

// NewBuilder creates a builder. A nil logger discards diagnostics.
func NewBuilder(p Palette, log *zap.Logger) Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return Builder{Palette: p, Log: log}
}

// Build emits two triangles per cell, row-major. Cells alternate between
// "up" and "down" orientation by the parity of row+col, tiling the plane with
// equilateral footprints whose shared corners carry identical coordinates.
// Each footprint is halved along the median from its apex.
//
// Every vertex sits on a lattice point identified by its horizontal position
// in half units and the grid line it lies on. Its height is sampled from the
// grid at (line, floor(x)), so the cells meeting at a corner all read the same
// sample. Lines and columns past the edge clamp to the border sample.
func (b Builder) Build(m *Map) []Triangle {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}

	rows, cols := m.Size()
	tris := make([]Triangle, 0, 2*rows*cols)
	unknown := make(map[byte]struct{})

	for row := range rows {
		for col := range cols {
			code := m.Types.At(row, col)
			c, ok := b.Palette.Lookup(code)
			if !ok {
				if _, seen := unknown[code]; !seen {
					unknown[code] = struct{}{}
					log.Warn("unknown terrain code, using fallback color",
						zap.String("map", m.Name),
						zap.String("code", string(rune(code))),
						zap.Int("row", row),
						zap.Int("col", col),
					)
				}
			}

			// Corners as (half-unit x, grid line). The first two span the
			// horizontal edge left to right, the third is the apex.
			xh := col
			var corners [3][2]int
			if (row+col)%2 == 0 {
				corners = [3][2]int{{xh, row + 1}, {xh + 2, row + 1}, {xh + 1, row}}
			} else {
				corners = [3][2]int{{xh, row}, {xh + 2, row}, {xh + 1, row + 1}}
			}

			var v [3]math3d.Vec3
			for i, p := range corners {
				v[i] = latticeVertex(m.Heights, p[0], p[1])
			}

			// Split the footprint at the midpoint of its horizontal edge. The
			// neighbor across that edge splits the same edge from the same two
			// endpoints, so the midpoint matches bit for bit.
			mid := edgeMidpoint(v[0], v[1])
			tris = append(tris,
				Triangle{V: [3]math3d.Vec3{v[0], mid, v[2]}, Color: c, Row: row, Col: col},
				Triangle{V: [3]math3d.Vec3{mid, v[1], v[2]}, Color: c, Row: row, Col: col},
			)
		}
	}

	if len(unknown) > 0 {
		log.Debug("mesh built with fallback colors", zap.Int("codes", len(unknown)))
	}
	return tris
}

// latticeVertex returns the world position of the lattice point at half-unit
// x position xh on grid line. Both coordinates are computed from integers so
// every cell sharing the point produces the same bits.
func latticeVertex(h HeightGrid, xh, line int) math3d.Vec3 {
	return math3d.V3(
		float64(xh)/2,
		float64(line)*RowHeight,
		float64(h.At(line, xh/2))/HeightScale,
	)
}

// edgeMidpoint averages the endpoints of a horizontal edge given left to right.
func edgeMidpoint(left, right math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		(left.X+right.X)/2,
		left.Y,
		(left.Z+right.Z)/2,
	)
}
