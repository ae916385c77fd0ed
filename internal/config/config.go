// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/trimap/pkg/math3d"
	"github.com/taigrr/trimap/pkg/render"
	"github.com/taigrr/trimap/pkg/terrain"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Camera  CameraConfig  `yaml:"camera"`
	Map     MapConfig     `yaml:"map"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds frame settings. Width and Height size snapshots; the
// interactive viewer always fills the terminal.
type DisplayConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"` // "R,G,B"
}

// CameraConfig is the starting pose.
type CameraConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Angle float64 `yaml:"angle"`
	Lower float64 `yaml:"lower"`
}

// MapConfig selects the terrain. An empty path uses the built-in map.
type MapConfig struct {
	Path string `yaml:"path"`
}

// RenderConfig holds drawing options.
type RenderConfig struct {
	Border      string            `yaml:"border"` // "R,G,B"
	BorderAlpha uint8             `yaml:"border_alpha"`
	Wireframe   bool              `yaml:"wireframe"`
	Palette     map[string]string `yaml:"palette"` // terrain code -> "R,G,B"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Snapshot size used when no display size is configured.
const (
	DefaultSnapshotWidth  = 320
	DefaultSnapshotHeight = 192
)

// Default returns a Config with the stock viewer settings.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			FPS:        60,
			Background: "30,30,40",
		},
		Camera: CameraConfig{
			X:     render.DefaultPosition.X,
			Y:     render.DefaultPosition.Y,
			Z:     render.DefaultPosition.Z,
			Angle: render.DefaultAngle,
			Lower: render.DefaultLower,
		},
		Render: RenderConfig{
			Border:      "0,0,0",
			BorderAlpha: render.ColorBorder.A,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "trimap.log",
		},
	}
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("%w: negative display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.Display.FPS)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if _, err := c.BorderColor(); err != nil {
		return fmt.Errorf("%w: border: %w", ErrInvalid, err)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// BackgroundColor parses the clear color.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	return terrain.ParseRGB(c.Display.Background)
}

// BorderColor parses the triangle outline color, premultiplied by its alpha.
func (c *Config) BorderColor() (color.RGBA, error) {
	rgb, err := terrain.ParseRGB(c.Render.Border)
	if err != nil {
		return color.RGBA{}, err
	}
	a := uint32(c.Render.BorderAlpha)
	return color.RGBA{
		R: uint8(uint32(rgb.R) * a / 255),
		G: uint8(uint32(rgb.G) * a / 255),
		B: uint8(uint32(rgb.B) * a / 255),
		A: uint8(a),
	}, nil
}

// Palette returns the default palette with the configured overrides.
// Each override key must be a single terrain code character.
func (c *Config) Palette() (terrain.Palette, error) {
	p := terrain.DefaultPalette()
	for code, rgb := range c.Render.Palette {
		if len(code) != 1 {
			return terrain.Palette{}, fmt.Errorf("palette code %q is not a single character", code)
		}
		col, err := terrain.ParseRGB(rgb)
		if err != nil {
			return terrain.Palette{}, fmt.Errorf("palette code %q: %w", code, err)
		}
		p = p.With(code[0], col)
	}
	return p, nil
}

// CameraPosition returns the configured starting position.
func (c *Config) CameraPosition() math3d.Vec3 {
	return math3d.V3(c.Camera.X, c.Camera.Y, c.Camera.Z)
}

// SnapshotSize returns the display size with the snapshot defaults filled in.
func (c *Config) SnapshotSize() (int, int) {
	w, h := c.Display.Width, c.Display.Height
	if w == 0 {
		w = DefaultSnapshotWidth
	}
	if h == 0 {
		h = DefaultSnapshotHeight
	}
	return w, h
}
