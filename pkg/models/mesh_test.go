package models

import (
	"image/color"
	"testing"

	"github.com/taigrr/trimap/pkg/math3d"
	"github.com/taigrr/trimap/pkg/terrain"
)

func mustMap(t *testing.T, heights terrain.HeightGrid, types terrain.TypeGrid) *terrain.Map {
	t.Helper()
	m, err := terrain.NewMap("test", heights, types)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func TestFromTrianglesSharesVertices(t *testing.T) {
	// Flat single-type terrain: every seam vertex collapses.
	m := mustMap(t, terrain.HeightGrid{{5, 5}, {5, 5}}, terrain.TypeGrid{"xx", "xx"})
	tris := terrain.NewBuilder(terrain.DefaultPalette(), nil).Build(m)
	mesh := FromTriangles("flat", tris)

	if mesh.TriangleCount() != 8 {
		t.Fatalf("TriangleCount = %d, want 8", mesh.TriangleCount())
	}
	if mesh.VertexCount() >= 3*len(tris) {
		t.Errorf("VertexCount = %d, expected shared vertices", mesh.VertexCount())
	}
	seen := make(map[MeshVertex]bool)
	for _, v := range mesh.Vertices {
		if seen[v] {
			t.Errorf("duplicate vertex %v", v)
		}
		seen[v] = true
	}
}

func TestFromTrianglesKeepsColorsApart(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	a := terrain.Triangle{V: [3]math3d.Vec3{{X: 0}, {X: 1}, {Y: 1}}, Color: red}
	b := terrain.Triangle{V: [3]math3d.Vec3{{X: 1}, {Y: 1}, {X: 1, Y: 1}}, Color: blue}

	mesh := FromTriangles("two", []terrain.Triangle{a, b})
	if mesh.VertexCount() != 6 {
		t.Errorf("VertexCount = %d, want 6 (no sharing across colors)", mesh.VertexCount())
	}

	back := mesh.Triangles()
	if back[0].Color != red || back[1].Color != blue {
		t.Errorf("colors = %v/%v, want red/blue", back[0].Color, back[1].Color)
	}
	if back[1].V != b.V {
		t.Errorf("vertices = %v, want %v", back[1].V, b.V)
	}
	if back[0].Row != -1 || back[0].Col != -1 {
		t.Errorf("source cell = (%d,%d), want (-1,-1)", back[0].Row, back[0].Col)
	}
}

func TestMeshBounds(t *testing.T) {
	tri := terrain.Triangle{V: [3]math3d.Vec3{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -2, Z: 1}, {X: 0, Y: 0, Z: 4}}}
	mesh := FromTriangles("b", []terrain.Triangle{tri})

	if want := math3d.V3(-1, -2, 0); mesh.BoundsMin != want {
		t.Errorf("BoundsMin = %v, want %v", mesh.BoundsMin, want)
	}
	if want := math3d.V3(3, 2, 4); mesh.BoundsMax != want {
		t.Errorf("BoundsMax = %v, want %v", mesh.BoundsMax, want)
	}
	if want := math3d.V3(1, 0, 2); mesh.Center() != want {
		t.Errorf("Center = %v, want %v", mesh.Center(), want)
	}
	if want := math3d.V3(4, 4, 4); mesh.Size() != want {
		t.Errorf("Size = %v, want %v", mesh.Size(), want)
	}
}

func TestEmptyMesh(t *testing.T) {
	mesh := FromTriangles("empty", nil)
	if mesh.VertexCount() != 0 || mesh.TriangleCount() != 0 {
		t.Errorf("empty mesh has %d vertices, %d faces", mesh.VertexCount(), mesh.TriangleCount())
	}
	if len(mesh.Triangles()) != 0 {
		t.Error("Triangles of an empty mesh should be empty")
	}
}
