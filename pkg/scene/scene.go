// Package scene ties a terrain mesh to a camera and runs the per-frame
// update, projection, ordering and drawing steps.
package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/taigrr/trimap/pkg/models"
	"github.com/taigrr/trimap/pkg/terrain"
	"go.uber.org/zap"
)

// Scene is immutable terrain geometry built once from a map.
type Scene struct {
	ID   uuid.UUID
	Name string

	// Map is nil for scenes loaded from a mesh file.
	Map       *terrain.Map
	Triangles []terrain.Triangle
}

// New builds the terrain mesh for m.
func New(m *terrain.Map, b terrain.Builder) *Scene {
	return &Scene{
		ID:        uuid.New(),
		Name:      m.Name,
		Map:       m,
		Triangles: b.Build(m),
	}
}

// FromMesh wraps previously exported geometry.
func FromMesh(mesh *models.Mesh) *Scene {
	return &Scene{
		ID:        uuid.New(),
		Name:      mesh.Name,
		Triangles: mesh.Triangles(),
	}
}

// Load reads a scene from a YAML map or a .glb mesh, by extension.
func Load(path string, b terrain.Builder) (*Scene, error) {
	if isMesh(path) {
		mesh, err := models.LoadGLB(path)
		if err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
		return FromMesh(mesh), nil
	}
	m, err := terrain.LoadMap(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return New(m, b), nil
}

// Export writes the scene geometry as a binary glTF file.
func (s *Scene) Export(path string) error {
	return models.SaveGLB(path, models.FromTriangles(s.Name, s.Triangles))
}

// Fields returns log fields identifying the scene.
func (s *Scene) Fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("scene", s.ID),
		zap.String("name", s.Name),
		zap.Int("triangles", len(s.Triangles)),
	}
}

func isMesh(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glb")
}
