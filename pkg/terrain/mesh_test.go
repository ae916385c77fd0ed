package terrain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/trimap/pkg/math3d"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func mustMap(t *testing.T, heights HeightGrid, types TypeGrid) *Map {
	t.Helper()
	m, err := NewMap("test", heights, types)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func randomMap(t *testing.T, rows, cols int, seed int64) *Map {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	heights := make(HeightGrid, rows)
	types := make(TypeGrid, rows)
	codes := []byte{CodeOpen, CodeWall, CodePath}
	for r := range rows {
		heights[r] = make([]int, cols)
		row := make([]byte, cols)
		for c := range cols {
			heights[r][c] = rng.Intn(10)
			row[c] = codes[rng.Intn(len(codes))]
		}
		types[r] = string(row)
	}
	return mustMap(t, heights, types)
}

func TestRowHeight(t *testing.T) {
	if math.Abs(RowHeight-math.Sqrt(3)/2) > 1e-15 {
		t.Errorf("RowHeight = %v, want sqrt(3)/2", RowHeight)
	}
}

func TestBuildCardinality(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"1x1", 1, 1},
		{"2x2", 2, 2},
		{"3x5", 3, 5},
		{"12x16", 12, 16},
	}

	b := NewBuilder(DefaultPalette(), nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := randomMap(t, tc.rows, tc.cols, 1)
			tris := b.Build(m)
			if want := 2 * tc.rows * tc.cols; len(tris) != want {
				t.Errorf("got %d triangles, want %d", len(tris), want)
			}
		})
	}
}

func TestBuildFlatTerrain(t *testing.T) {
	m := mustMap(t, HeightGrid{{5, 5}, {5, 5}}, TypeGrid{"xx", "xx"})
	pal := DefaultPalette()
	wall, _ := pal.Lookup(CodeWall)

	tris := NewBuilder(pal, nil).Build(m)
	if len(tris) != 8 {
		t.Fatalf("got %d triangles, want 8", len(tris))
	}
	for i, tri := range tris {
		if tri.Color != wall {
			t.Errorf("triangle %d color = %v, want wall %v", i, tri.Color, wall)
		}
		for j, v := range tri.V {
			if v.Z != 1.0 {
				t.Errorf("triangle %d vertex %d z = %v, want 1.0", i, j, v.Z)
			}
		}
	}
}

func TestBuildFootprint(t *testing.T) {
	m := mustMap(t, HeightGrid{{0, 0}, {0, 0}}, TypeGrid{"  ", "  "})
	tris := NewBuilder(DefaultPalette(), nil).Build(m)
	h := RowHeight

	// Cell (0,0) points up, cell (0,1) points down.
	tests := []struct {
		name string
		tri  int
		want [3]math3d.Vec3
	}{
		{"up left half", 0, [3]math3d.Vec3{{X: 0, Y: h}, {X: 0.5, Y: h}, {X: 0.5, Y: 0}}},
		{"up right half", 1, [3]math3d.Vec3{{X: 0.5, Y: h}, {X: 1, Y: h}, {X: 0.5, Y: 0}}},
		{"down left half", 2, [3]math3d.Vec3{{X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: h}}},
		{"down right half", 3, [3]math3d.Vec3{{X: 1, Y: 0}, {X: 1.5, Y: 0}, {X: 1, Y: h}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tris[tc.tri].V
			for i := range 3 {
				if !got[i].ApproxEqual(tc.want[i], 1e-12) {
					t.Errorf("vertex %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestBuildSourceCell(t *testing.T) {
	m := randomMap(t, 3, 4, 2)
	tris := NewBuilder(DefaultPalette(), nil).Build(m)
	for i, tri := range tris {
		cell := i / 2
		if tri.Row != cell/4 || tri.Col != cell%4 {
			t.Errorf("triangle %d from (%d,%d), want (%d,%d)", i, tri.Row, tri.Col, cell/4, cell%4)
		}
	}
}

// latticeKey identifies a logical corner by its planar position.
type latticeKey struct{ xh, line int }

func keyOf(v math3d.Vec3) latticeKey {
	return latticeKey{int(math.Round(v.X * 4)), int(math.Round(v.Y / RowHeight))}
}

func TestBuildSeamless(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		m := randomMap(t, 7, 9, seed)
		tris := NewBuilder(DefaultPalette(), nil).Build(m)

		seen := make(map[latticeKey]math3d.Vec3)
		for i, tri := range tris {
			for j, v := range tri.V {
				k := keyOf(v)
				if prev, ok := seen[k]; ok && prev != v {
					t.Fatalf("seed %d: triangle %d vertex %d = %v, shared corner already at %v", seed, i, j, v, prev)
				}
				seen[k] = v
			}
		}
	}
}

func TestBuildAdjacentCellsShareCorners(t *testing.T) {
	m := randomMap(t, 4, 6, 3)
	tris := NewBuilder(DefaultPalette(), nil).Build(m)
	_, cols := m.Size()

	corners := func(row, col int) map[math3d.Vec3]bool {
		i := 2 * (row*cols + col)
		set := make(map[math3d.Vec3]bool)
		for _, tri := range tris[i : i+2] {
			for _, v := range tri.V {
				set[v] = true
			}
		}
		return set
	}
	shared := func(a, b map[math3d.Vec3]bool) int {
		n := 0
		for v := range a {
			if b[v] {
				n++
			}
		}
		return n
	}

	rows, _ := m.Size()
	for row := range rows {
		for col := range cols {
			here := corners(row, col)
			if col+1 < cols {
				if n := shared(here, corners(row, col+1)); n != 2 {
					t.Errorf("cells (%d,%d)/(%d,%d) share %d corners, want 2", row, col, row, col+1, n)
				}
			}
		}
	}

	// Vertical neighbors meet along a full horizontal edge (two corners plus
	// the split midpoint) when their horizontal edges coincide.
	for row := 0; row+1 < rows; row++ {
		for col := range cols {
			if (row+col)%2 != 0 {
				continue // this cell's horizontal edge is on its top line
			}
			if n := shared(corners(row, col), corners(row+1, col)); n != 3 {
				t.Errorf("cells (%d,%d)/(%d,%d) share %d points, want 3", row, col, row+1, col, n)
			}
		}
	}
}

func TestBuildEvenRowSamples(t *testing.T) {
	// On even rows the corner samples are height(xx, row+1), height(xx+1, row+1)
	// and height(xx, row) for up cells, with xx = col/2.
	heights := HeightGrid{
		{10, 20, 30, 40},
		{50, 60, 70, 80},
		{90, 95, 85, 75},
	}
	m := mustMap(t, heights, TypeGrid{"    ", "    ", "    "})
	tris := NewBuilder(DefaultPalette(), nil).Build(m)

	z := func(h int) float64 { return float64(h) / HeightScale }

	// Cell (0,2): up, xx = 1.
	up := tris[2*2]
	if up.V[0].Z != z(heights[1][1]) || up.V[2].Z != z(heights[0][1]) {
		t.Errorf("up cell z = %v/%v, want %v/%v", up.V[0].Z, up.V[2].Z, z(heights[1][1]), z(heights[0][1]))
	}
	if right := tris[2*2+1].V[1].Z; right != z(heights[1][2]) {
		t.Errorf("up cell right z = %v, want %v", right, z(heights[1][2]))
	}

	// Cell (0,1): down, xx = 0: height(0,0), height(1,0), height(1,1).
	down := tris[2*1]
	if down.V[0].Z != z(heights[0][0]) {
		t.Errorf("down cell left z = %v, want %v", down.V[0].Z, z(heights[0][0]))
	}
	if apex := down.V[2].Z; apex != z(heights[1][1]) {
		t.Errorf("down cell apex z = %v, want %v", apex, z(heights[1][1]))
	}
	if right := tris[2*1+1].V[1].Z; right != z(heights[0][1]) {
		t.Errorf("down cell right z = %v, want %v", right, z(heights[0][1]))
	}
}

func TestBuildEdgeCellsClamp(t *testing.T) {
	// The last row and column reach past the grid and must not panic.
	m := mustMap(t, HeightGrid{{3}}, TypeGrid{"r"})
	tris := NewBuilder(DefaultPalette(), nil).Build(m)
	for _, tri := range tris {
		for _, v := range tri.V {
			if v.Z != 3.0/HeightScale {
				t.Errorf("edge vertex z = %v, want clamped %v", v.Z, 3.0/HeightScale)
			}
		}
	}
}

func TestBuildUnknownCode(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pal := DefaultPalette()
	m := mustMap(t, HeightGrid{{1, 1}, {1, 1}}, TypeGrid{"??", "?x"})

	tris := NewBuilder(pal, zap.New(core)).Build(m)
	for _, tri := range tris {
		want := pal.Fallback
		if tri.Row == 1 && tri.Col == 1 {
			want, _ = pal.Lookup(CodeWall)
		}
		if tri.Color != want {
			t.Errorf("cell (%d,%d) color = %v, want %v", tri.Row, tri.Col, tri.Color, want)
		}
	}

	// One diagnostic per distinct code, not per cell.
	if n := logs.FilterMessage("unknown terrain code, using fallback color").Len(); n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
}

func TestBuildZeroValueBuilder(t *testing.T) {
	var b Builder
	tris := b.Build(mustMap(t, HeightGrid{{1}}, TypeGrid{"x"}))
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	if tris[0].Color != b.Palette.Fallback {
		t.Errorf("empty palette should use the fallback color")
	}
}

func TestTriangleCentroid(t *testing.T) {
	tri := Triangle{V: [3]math3d.Vec3{{X: 0}, {X: 3}, {Y: 3, Z: 6}}}
	if got := tri.Centroid(); !got.ApproxEqual(math3d.V3(1, 1, 2), 1e-12) {
		t.Errorf("Centroid = %v, want (1, 1, 2)", got)
	}
}

func BenchmarkBuildDefaultMap(b *testing.B) {
	m := DefaultMap()
	builder := NewBuilder(DefaultPalette(), nil)

	for b.Loop() {
		_ = builder.Build(m)
	}
}
