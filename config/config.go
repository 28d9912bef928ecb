// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/multipong/input"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Ball      BallConfig      `yaml:"ball"`
	Clock     ClockConfig     `yaml:"clock"`
	Input     InputConfig     `yaml:"input"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Terminal  TerminalConfig  `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Title     string `yaml:"title"`
	X         int    `yaml:"x"` // Top-left window position
	Y         int    `yaml:"y"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // 0 = uncapped, pacing left to the clock
}

// FieldConfig holds playfield dimensions.
type FieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"` // Also paddle width and ball size
}

// PaddleConfig holds paddle geometry and movement.
type PaddleConfig struct {
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`       // Units per second
	EdgeOffset float64 `yaml:"edge_offset"` // Gap between field edge and paddle
	FaceMin    float64 `yaml:"face_min"`    // Left face band start, mirrored for the right paddle
	FaceMax    float64 `yaml:"face_max"`    // Left face band end
}

// BallConfig holds initial ball spawn parameters.
type BallConfig struct {
	Count    int     `yaml:"count"`
	Jitter   float64 `yaml:"jitter"` // Uniform jitter half-range for position and velocity
	BaseVelX float64 `yaml:"base_vel_x"`
	BaseVelY float64 `yaml:"base_vel_y"`
}

// ClockConfig holds frame pacing parameters.
type ClockConfig struct {
	MinFrameMS int     `yaml:"min_frame_ms"`
	MaxDelta   float64 `yaml:"max_delta"` // Seconds
	SpinMS     int     `yaml:"spin_ms"`   // Final busy-wait window
}

// InputConfig holds key bindings by raylib key name.
type InputConfig struct {
	LeftUp    string `yaml:"left_up"`
	LeftDown  string `yaml:"left_down"`
	RightUp   string `yaml:"right_up"`
	RightDown string `yaml:"right_down"`
	Quit      string `yaml:"quit"`
	ToggleHUD string `yaml:"toggle_hud"`
}

// HeadlessConfig holds settings for runs without a window.
type HeadlessConfig struct {
	DT float64 `yaml:"dt"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time
	PerfWindow  int     `yaml:"perf_window"`  // Frames
}

// TerminalConfig holds settings for the text-mode frontend.
type TerminalConfig struct {
	KeyHoldMS int `yaml:"key_hold_ms"` // How long a key press counts as held
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FieldW32     float32
	FieldH32     float32
	Wall32       float32
	PaddleH32    float32
	LeftPaddleX  float32 // Draw x of the left paddle
	RightPaddleX float32 // Draw x of the right paddle
	RightFaceMin float32
	RightFaceMax float32
	HeadlessDT32 float32
	Bindings     input.Bindings
	ToggleHUDKey int32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, errors.New("field dimensions must be positive"))
	}
	if c.Field.Height < c.Paddle.Height+2*c.Field.WallThickness {
		errs = append(errs, errors.New("field too short for paddle and walls"))
	}
	if c.Paddle.FaceMin > c.Paddle.FaceMax {
		errs = append(errs, errors.New("paddle face_min exceeds face_max"))
	}
	if c.Ball.Count < 1 {
		errs = append(errs, errors.New("ball count must be at least 1"))
	}
	if c.Clock.MinFrameMS < 1 {
		errs = append(errs, errors.New("clock min_frame_ms must be at least 1"))
	}
	if c.Clock.MaxDelta <= 0 {
		errs = append(errs, errors.New("clock max_delta must be positive"))
	}
	if c.Headless.DT <= 0 || c.Headless.DT > c.Clock.MaxDelta {
		errs = append(errs, errors.New("headless dt must be in (0, max_delta]"))
	}
	if c.Terminal.KeyHoldMS < 1 {
		errs = append(errs, errors.New("terminal key_hold_ms must be at least 1"))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.FieldW32 = float32(c.Field.Width)
	c.Derived.FieldH32 = float32(c.Field.Height)
	c.Derived.Wall32 = float32(c.Field.WallThickness)
	c.Derived.PaddleH32 = float32(c.Paddle.Height)

	c.Derived.LeftPaddleX = float32(c.Paddle.EdgeOffset)
	c.Derived.RightPaddleX = float32(c.Field.Width - c.Paddle.EdgeOffset - c.Field.WallThickness)

	// Right face band mirrors the left one across the field
	c.Derived.RightFaceMin = float32(c.Field.Width - c.Paddle.FaceMax)
	c.Derived.RightFaceMax = float32(c.Field.Width - c.Paddle.FaceMin)

	c.Derived.HeadlessDT32 = float32(c.Headless.DT)

	keys := []struct {
		name string
		dst  *int32
	}{
		{c.Input.LeftUp, &c.Derived.Bindings.LeftUp},
		{c.Input.LeftDown, &c.Derived.Bindings.LeftDown},
		{c.Input.RightUp, &c.Derived.Bindings.RightUp},
		{c.Input.RightDown, &c.Derived.Bindings.RightDown},
		{c.Input.Quit, &c.Derived.Bindings.Quit},
		{c.Input.ToggleHUD, &c.Derived.ToggleHUDKey},
	}
	for _, k := range keys {
		code, err := input.KeyCode(k.name)
		if err != nil {
			return fmt.Errorf("resolving key binding: %w", err)
		}
		*k.dst = code
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
