// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Visibility VisibilityConfig `yaml:"visibility"`
	Camera     CameraConfig     `yaml:"camera"`
	World      WorldConfig      `yaml:"world"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Headless   bool `yaml:"headless"` // run the simulation without a window
}

// VisibilityConfig holds the viewing window along the track.
type VisibilityConfig struct {
	ForwardDistance  float64 `yaml:"forward_distance"`
	BackwardDistance float64 `yaml:"backward_distance"`
	Epsilon          float64 `yaml:"epsilon"`
}

// CameraConfig holds the track camera settings.
type CameraConfig struct {
	StartPosition           float64 `yaml:"start_position"`
	Speed                   float64 `yaml:"speed"`
	OverlayAlphaRestriction bool    `yaml:"overlay_alpha_restriction"`
}

// WorldConfig selects the world to load. An empty Path generates one.
type WorldConfig struct {
	Path    string `yaml:"path"`
	Objects int    `yaml:"objects"`
	Seed    int64  `yaml:"seed"`
	Frames  int    `yaml:"frames"` // headless frame count
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Visibility: VisibilityConfig{
			ForwardDistance:  600,
			BackwardDistance: 100,
			Epsilon:          0.001,
		},
		Camera: CameraConfig{
			StartPosition: 0,
			Speed:         20,
		},
		World: WorldConfig{
			Objects: 2000,
			Seed:    1,
			Frames:  600,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
