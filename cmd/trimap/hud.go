package main

import (
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/trimap/pkg/scene"
)

// hud is the overlay with frame stats and key hints.
type hud struct {
	name string
	show bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(name string) *hud {
	return &hud{name: name, fpsTime: time.Now()}
}

// tick counts a frame toward the FPS readout.
func (h *hud) tick(now time.Time) {
	h.fpsFrames++
	if elapsed := now.Sub(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

const (
	sgrReset  = "\x1b[0m"
	sgrBold   = "\x1b[1m"
	sgrDim    = "\x1b[2m"
	sgrBlack  = "\x1b[40m"
	sgrWhite  = "\x1b[97m"
	sgrGreen  = "\x1b[92m"
	sgrCyan   = "\x1b[96m"
	sgrYellow = "\x1b[93m"
)

func (h *hud) topLine(stats scene.FrameStats) string {
	return fmt.Sprintf("%s%s %.0f FPS %s%s%s %s %s%s %d/%d tris %s",
		sgrBlack, sgrGreen, h.fps,
		sgrBold, sgrWhite, sgrBlack, h.name, sgrReset,
		sgrBlack+sgrCyan, stats.Visible, stats.Triangles, sgrReset)
}

func (h *hud) bottomLine(wireframe bool) string {
	check := "[ ]"
	if wireframe {
		check = "[✓]"
	}
	return fmt.Sprintf("%s%s %s wireframe %s%s ←→ turn  ↑↓ look  w advance  r reset  esc quit %s",
		sgrBlack, sgrWhite, check, sgrDim, sgrYellow, sgrReset)
}

// draw writes the overlay over the first and last rows of scr. The frame
// beneath repaints every cell, so a hidden HUD needs no clearing.
func (h *hud) draw(scr uv.Screen, width, height int, stats scene.FrameStats, wireframe bool) {
	if !h.show || width <= 0 || height <= 0 {
		return
	}
	uv.NewStyledString(h.topLine(stats)).Draw(scr, uv.Rect(0, 0, width, 1))
	if height > 1 {
		uv.NewStyledString(h.bottomLine(wireframe)).Draw(scr, uv.Rect(0, height-1, width, 1))
	}
}
