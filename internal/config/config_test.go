package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Headless {
		t.Error("expected headless to be false by default")
	}
	if cfg.Visibility.ForwardDistance != 600 {
		t.Errorf("expected forward distance 600, got %v", cfg.Visibility.ForwardDistance)
	}
	if cfg.Visibility.BackwardDistance != 100 {
		t.Errorf("expected backward distance 100, got %v", cfg.Visibility.BackwardDistance)
	}
	if cfg.Visibility.Epsilon != 0.001 {
		t.Errorf("expected epsilon 0.001, got %v", cfg.Visibility.Epsilon)
	}
	if cfg.Camera.Speed != 20 {
		t.Errorf("expected camera speed 20, got %v", cfg.Camera.Speed)
	}
	if cfg.World.Path != "" {
		t.Errorf("expected generated world by default, got path %s", cfg.World.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  headless: true

visibility:
  forward_distance: 1200
  backward_distance: 80

camera:
  start_position: 350.5
  speed: 45
  overlay_alpha_restriction: true

world:
  path: "route.yaml"
  frames: 100

logging:
  level: "debug"
  log_file: "trackview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Headless {
		t.Error("expected headless to be true")
	}
	if cfg.Visibility.ForwardDistance != 1200 || cfg.Visibility.BackwardDistance != 80 {
		t.Errorf("expected distances 1200/80, got %v/%v", cfg.Visibility.ForwardDistance, cfg.Visibility.BackwardDistance)
	}
	if cfg.Visibility.Epsilon != 0.001 {
		t.Errorf("epsilon should keep its default, got %v", cfg.Visibility.Epsilon)
	}
	if cfg.Camera.StartPosition != 350.5 || cfg.Camera.Speed != 45 || !cfg.Camera.OverlayAlphaRestriction {
		t.Errorf("unexpected camera config %+v", cfg.Camera)
	}
	if cfg.World.Path != "route.yaml" || cfg.World.Frames != 100 {
		t.Errorf("unexpected world config %+v", cfg.World)
	}
	if cfg.World.Objects != 2000 {
		t.Errorf("world objects should keep its default, got %d", cfg.World.Objects)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "trackview.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "visibility:\n  forward_distance: far\n  invalid syntax here\n"},
		{"negative distance", "visibility:\n  forward_distance: -5\n"},
		{"zero epsilon", "visibility:\n  epsilon: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "world flag",
			setup: func() { *flagWorld = "custom.yaml" },
			verify: func(cfg *Config) {
				if cfg.World.Path != "custom.yaml" {
					t.Errorf("expected world custom.yaml, got %s", cfg.World.Path)
				}
			},
			teardown: func() { *flagWorld = "" },
		},
		{
			name: "distance flags",
			setup: func() {
				*flagForward = 900
				*flagBackward = 25
			},
			verify: func(cfg *Config) {
				if cfg.Visibility.ForwardDistance != 900 || cfg.Visibility.BackwardDistance != 25 {
					t.Errorf("expected distances 900/25, got %v/%v",
						cfg.Visibility.ForwardDistance, cfg.Visibility.BackwardDistance)
				}
			},
			teardown: func() {
				*flagForward = 0
				*flagBackward = 0
			},
		},
		{
			name: "headless flags",
			setup: func() {
				*flagHeadless = true
				*flagFrames = 42
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Headless || cfg.World.Frames != 42 {
					t.Errorf("expected headless with 42 frames, got %v/%d", cfg.Graphics.Headless, cfg.World.Frames)
				}
			},
			teardown: func() {
				*flagHeadless = false
				*flagFrames = 0
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
visibility:
  forward_distance: 700
  backward_distance: 150
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagForward = 1000
	defer func() {
		*flagConfig = ""
		*flagForward = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Visibility.ForwardDistance != 1000 {
		t.Errorf("expected forward distance 1000 from flag, got %v", cfg.Visibility.ForwardDistance)
	}
	if cfg.Visibility.BackwardDistance != 150 {
		t.Errorf("expected backward distance 150 from file, got %v", cfg.Visibility.BackwardDistance)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Visibility.ForwardDistance = 321

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Visibility.ForwardDistance != 321 {
		t.Errorf("expected forward distance 321, got %v", loaded.Visibility.ForwardDistance)
	}
}
