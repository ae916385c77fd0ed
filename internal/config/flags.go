package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config  string
	Map     string
	Debug   bool
	FPS     int
	Width   int
	Height  int
	LogFile string

	// Run modes, not persisted in the config file.
	Snapshot   string
	Export     string
	SaveConfig string
}

// RegisterFlags defines the viewer flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Map, "map", "", "Terrain map (.yaml) or exported mesh (.glb)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.FPS, "fps", 0, "Target FPS")
	fs.IntVar(&f.Width, "width", 0, "Surface width in pixels")
	fs.IntVar(&f.Height, "height", 0, "Surface height in pixels")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&f.Snapshot, "snapshot", "", "Render one frame to this PNG and exit")
	fs.StringVar(&f.Export, "export", "", "Write the terrain mesh to this GLB and exit")
	fs.StringVar(&f.SaveConfig, "save-config", "", "Write the effective config to this path and exit")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f.Map != "" {
		cfg.Map.Path = f.Map
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.FPS > 0 {
		cfg.Display.FPS = f.FPS
	}
	if f.Width > 0 {
		cfg.Display.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Display.Height = f.Height
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
