// Package models converts terrain meshes to and from indexed glTF geometry.
package models

import (
	"image/color"

	"github.com/taigrr/trimap/pkg/math3d"
	"github.com/taigrr/trimap/pkg/terrain"
)

// Mesh is an indexed triangle mesh with per-vertex colors.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Color    color.RGBA
}

// Face is a triangle referencing three entries of Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// FromTriangles indexes a terrain triangle list. Vertices are shared between
// faces when both position and color match, so seams between cells of the
// same type collapse to a single vertex.
func FromTriangles(name string, tris []terrain.Triangle) *Mesh {
	m := NewMesh(name)
	index := make(map[MeshVertex]int, len(tris))
	for _, tri := range tris {
		var f Face
		for i, p := range tri.V {
			v := MeshVertex{Position: p, Color: tri.Color}
			idx, ok := index[v]
			if !ok {
				idx = len(m.Vertices)
				m.Vertices = append(m.Vertices, v)
				index[v] = idx
			}
			f.V[i] = idx
		}
		m.Faces = append(m.Faces, f)
	}
	m.CalculateBounds()
	return m
}

// Triangles expands the mesh back into flat-colored terrain triangles.
// A face takes the color of its first vertex. Source cells are not stored in
// the mesh, so Row and Col are -1.
func (m *Mesh) Triangles() []terrain.Triangle {
	tris := make([]terrain.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = terrain.Triangle{
			V: [3]math3d.Vec3{
				m.Vertices[f.V[0]].Position,
				m.Vertices[f.V[1]].Position,
				m.Vertices[f.V[2]].Position,
			},
			Color: m.Vertices[f.V[0]].Color,
			Row:   -1,
			Col:   -1,
		}
	}
	return tris
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}
