// trimap - Terminal terrain viewer
// Fly over a height-mapped triangle terrain in your terminal.
//
// Controls:
//
//	Left/Right  - Turn
//	Up/Down     - Look up/down
//	W/Space     - Advance
//	R           - Reset camera
//	X           - Toggle wireframe
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/trimap/internal/config"
	"github.com/taigrr/trimap/internal/logger"
	"github.com/taigrr/trimap/pkg/render"
	"github.com/taigrr/trimap/pkg/scene"
	"github.com/taigrr/trimap/pkg/terrain"
	"go.uber.org/zap"
)

// maxFrameMillis caps the update step after a stall.
const maxFrameMillis = 100.0

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "trimap - Terminal terrain viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: trimap [options] [map.yaml|mesh.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Turn\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Look up/down\n")
		fmt.Fprintf(os.Stderr, "  W/Space     - Advance\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flags.Map == "" && flag.NArg() > 0 {
		flags.Map = flag.Arg(0)
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if flags.SaveConfig != "" {
		return cfg.SaveTo(flags.SaveConfig)
	}

	interactive := flags.Snapshot == "" && flags.Export == ""
	if interactive {
		// The terminal belongs to the viewer, so log to the file only.
		err = logger.InitFileOnly(cfg.Logging.Level, cfg.Logging.LogFile)
	} else {
		err = logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}
	logger.Log.Info("scene loaded", s.Fields()...)

	if flags.Export != "" {
		if err := s.Export(flags.Export); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logger.Log.Info("mesh exported", zap.String("path", flags.Export))
	}
	if flags.Snapshot != "" {
		if err := snapshot(cfg, s, flags.Snapshot); err != nil {
			return err
		}
	}
	if !interactive {
		return nil
	}
	return view(cfg, s)
}

// loadScene builds the configured map, or the built-in one.
func loadScene(cfg *config.Config) (*scene.Scene, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	b := terrain.NewBuilder(palette, logger.Log.Named("terrain"))
	if cfg.Map.Path == "" {
		return scene.New(terrain.DefaultMap(), b), nil
	}
	return scene.Load(cfg.Map.Path, b)
}

// newViewer applies the camera and render settings to a fresh viewer.
func newViewer(cfg *config.Config, s *scene.Scene) (*scene.Viewer, error) {
	v := scene.NewViewer(s, logger.Log.Named("viewer"))
	resetCamera(cfg, v.Camera)

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	border, err := cfg.BorderColor()
	if err != nil {
		return nil, err
	}
	v.Renderer.Background = bg
	v.Renderer.Border = border
	v.Renderer.Wireframe = cfg.Render.Wireframe
	return v, nil
}

func resetCamera(cfg *config.Config, c *render.Camera) {
	c.SetPosition(cfg.CameraPosition())
	c.SetRotation(cfg.Camera.Angle, cfg.Camera.Lower)
}

// snapshot renders one frame from the starting pose to a PNG.
func snapshot(cfg *config.Config, s *scene.Scene, path string) error {
	v, err := newViewer(cfg, s)
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(cfg.SnapshotSize())
	stats := v.Draw(fb)
	if err := fb.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	logger.Log.Info("snapshot written",
		zap.String("path", path),
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("visible", stats.Visible),
		zap.Int("culled", stats.Culled),
	)
	return nil
}

// frameState is shared by the event goroutine and the frame loop.
type frameState struct {
	mu       sync.Mutex
	width    int
	height   int
	term     *render.TerminalRenderer
	fb       *render.Framebuffer
	viewer   *scene.Viewer
	hud      *hud
	resetCam bool
}

func (f *frameState) resize(term *uv.Terminal, width, height int) {
	f.width, f.height = width, height
	f.term = render.NewTerminalRenderer(term, width, height)
	f.fb = render.NewFramebuffer(f.term.FramebufferSize())
}

// view runs the interactive terminal loop until Esc, ctrl+c or a signal.
func view(cfg *config.Config, s *scene.Scene) error {
	v, err := newViewer(cfg, s)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		logger.Log.Warn("resize failed", zap.Error(err))
	}

	state := &frameState{viewer: v, hud: newHUD(s.Name)}
	state.resize(term, width, height)
	input := newInputState(cfg.Display.FPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	go handleEvents(ctx, cancel, term, state, input)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}
	defer cleanup()

	logger.Log.Info("viewer started", zap.Int("cols", width), zap.Int("rows", height), zap.Int("fps", cfg.Display.FPS))

	targetDuration := time.Second / time.Duration(cfg.Display.FPS)
	lastFrame := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("viewer stopped", zap.Stringer("scene", s.ID))
			return nil
		default:
		}

		now := time.Now()
		dt := min(float64(now.Sub(lastFrame).Microseconds())/1000, maxFrameMillis)
		lastFrame = now
		in := input.snapshot()

		state.mu.Lock()
		if state.resetCam {
			resetCamera(cfg, state.viewer.Camera)
			state.resetCam = false
		}
		stats := state.viewer.Frame(dt, in, state.fb)
		state.term.Render(state.fb)
		state.hud.tick(now)
		state.hud.draw(term, state.width, state.height, stats, state.viewer.Renderer.Wireframe)
		err := state.term.Flush()
		state.mu.Unlock()
		if err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

func handleEvents(ctx context.Context, cancel context.CancelFunc, term *uv.Terminal, state *frameState, input *inputState) {
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return
		case e, ok := <-term.Events():
			if !ok {
				return
			}
			ev = e
		}

		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			state.mu.Lock()
			term.Erase()
			if err := term.Resize(ev.Width, ev.Height); err != nil {
				logger.Log.Warn("resize failed", zap.Error(err))
			}
			state.resize(term, ev.Width, ev.Height)
			state.mu.Unlock()

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c"):
				cancel()
				return
			case ev.MatchString("x"):
				state.mu.Lock()
				state.viewer.Renderer.Wireframe = !state.viewer.Renderer.Wireframe
				state.mu.Unlock()
			case ev.MatchString("?", "shift+/"):
				state.mu.Lock()
				state.hud.show = !state.hud.show
				state.mu.Unlock()
			case ev.MatchString("r"):
				input.reset()
				state.mu.Lock()
				state.resetCam = true
				state.mu.Unlock()
			default:
				if c, ok := controlFor(ev.MatchString); ok {
					input.press(c)
				}
			}

		case uv.KeyReleaseEvent:
			if c, ok := controlFor(ev.MatchString); ok {
				input.release(c)
			}
		}
	}
}
