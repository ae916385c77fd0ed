package scene

import (
	"github.com/taigrr/trimap/pkg/render"
	"go.uber.org/zap"
)

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	Triangles int // in the scene
	Visible   int // drawn
	Culled    int // dropped for a vertex behind the camera
}

// Viewer renders a Scene through a Camera. The camera is written only by
// the update step at the start of each frame.
type Viewer struct {
	Scene    *Scene
	Camera   *render.Camera
	Renderer *render.Renderer
	Log      *zap.Logger

	ordered []render.Projected
}

// NewViewer creates a viewer with a default camera and renderer.
// A nil logger discards diagnostics.
func NewViewer(s *Scene, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		Scene:    s,
		Camera:   render.NewCamera(),
		Renderer: render.NewRenderer(),
		Log:      log,
	}
}

// Frame advances the camera by deltaMillis of input and draws the scene
// onto surf. A failed camera advance is logged and the frame still renders
// from the unchanged position.
func (v *Viewer) Frame(deltaMillis float64, in render.Input, surf render.Surface) FrameStats {
	if err := v.Camera.Update(deltaMillis, in); err != nil {
		v.Log.Warn("camera advance skipped", zap.Error(err), zap.Stringer("scene", v.Scene.ID))
	}
	return v.Draw(surf)
}

// Draw renders the scene from the current camera without updating it.
func (v *Viewer) Draw(surf render.Surface) FrameStats {
	w, h := surf.Size()
	proj := render.NewProjector(w, h)
	v.ordered = render.AppendOrdered(v.ordered, v.Scene.Triangles, v.Camera.Transform(), proj, v.Camera.Position)
	v.Renderer.Render(surf, v.ordered)

	total := len(v.Scene.Triangles)
	return FrameStats{
		Triangles: total,
		Visible:   len(v.ordered),
		Culled:    total - len(v.ordered),
	}
}
