// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Camera modes.
const (
	CameraFly   = "fly"
	CameraOrbit = "orbit"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Headless   bool    `yaml:"headless"`
	MaxFrames  uint64  `yaml:"max_frames"` // 0 = run until closed
}

// CameraConfig holds camera rig settings.
type CameraConfig struct {
	Mode            string     `yaml:"mode"` // fly or orbit
	Start           [3]float32 `yaml:"start"`
	Target          [3]float32 `yaml:"target"`
	LookSensitivity float32    `yaml:"look_sensitivity"`
	MoveSpeed       float32    `yaml:"move_speed"`
	FlySpeed        float32    `yaml:"fly_speed"`
	Keys            KeysConfig `yaml:"keys"`
}

// KeysConfig holds movement key names.
type KeysConfig struct {
	Forward  string `yaml:"forward"`
	Backward string `yaml:"backward"`
	Left     string `yaml:"left"`
	Right    string `yaml:"right"`
	Up       string `yaml:"up"`
}

// SceneConfig selects the layout.
type SceneConfig struct {
	Layout string `yaml:"layout"` // empty = built-in island
}

// DataConfig holds asset locations.
type DataConfig struct {
	AssetRoots  []string `yaml:"asset_roots"` // later roots take priority
	LoadWorkers int      `yaml:"load_workers"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        75,
			Near:       0.1,
			Far:        1000,
		},
		Camera: CameraConfig{
			Mode:            CameraFly,
			Start:           [3]float32{0, 50, 70},
			Target:          [3]float32{0, 0, 0},
			LookSensitivity: 0.001,
			MoveSpeed:       0.1,
			FlySpeed:        0.1,
			Keys: KeysConfig{
				Forward:  "w",
				Backward: "s",
				Left:     "a",
				Right:    "d",
				Up:       "space",
			},
		},
		Data: DataConfig{
			AssetRoots:  []string{"."},
			LoadWorkers: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting the viewer cannot run with.
func (c *Config) Validate() error {
	switch c.Camera.Mode {
	case CameraFly, CameraOrbit:
	default:
		return fmt.Errorf("%w: camera.mode %q (want %s or %s)", ErrInvalid, c.Camera.Mode, CameraFly, CameraOrbit)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		return fmt.Errorf("%w: graphics.fov %v", ErrInvalid, c.Graphics.FOV)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Graphics.Near, c.Graphics.Far)
	}
	if c.Graphics.FPSLimit < 0 {
		return fmt.Errorf("%w: graphics.fps_limit %d", ErrInvalid, c.Graphics.FPSLimit)
	}
	if c.Camera.MoveSpeed < 0 || c.Camera.FlySpeed < 0 {
		return fmt.Errorf("%w: negative camera speed", ErrInvalid)
	}
	k := c.Camera.Keys
	for name, v := range map[string]string{"forward": k.Forward, "backward": k.Backward, "left": k.Left, "right": k.Right, "up": k.Up} {
		if v == "" {
			return fmt.Errorf("%w: camera.keys.%s is empty", ErrInvalid, name)
		}
	}
	return nil
}
