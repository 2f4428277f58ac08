// Package config loads viewer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/tinyrange/glview/internal/camera"
)

// Config is the full set of viewer settings.
type Config struct {
	Window   Window    `yaml:"window"`
	Render   Render    `yaml:"render"`
	Camera2D Camera2D  `yaml:"camera2d"`
	Orbit    Orbit     `yaml:"orbit"`
	Texture  Texture   `yaml:"texture"`
	Keys     []Binding `yaml:"keys"`
}

type Window struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	SwapInterval int    `yaml:"swap_interval"`
	ClearColor   string `yaml:"clear_color"`
}

type Render struct {
	MaxFPS         int           `yaml:"max_fps"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

type Camera2D struct {
	Zoom        float32 `yaml:"zoom"`
	ZoomMin     float32 `yaml:"zoom_min"`
	ZoomMax     float32 `yaml:"zoom_max"`
	ScrollSpeed float32 `yaml:"scroll_speed"`
	MoveSpeed   float32 `yaml:"move_speed"`
}

// Home is the starting view.
func (c Camera2D) Home() camera.View2D {
	return camera.View2D{Zoom: c.Zoom}
}

// Limits converts to the camera's bounds.
func (c Camera2D) Limits() camera.Limits {
	return camera.Limits{ZoomMin: c.ZoomMin, ZoomMax: c.ZoomMax, ScrollSpeed: c.ScrollSpeed, MoveSpeed: c.MoveSpeed}
}

type Orbit struct {
	Distance    float32 `yaml:"distance"`
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
	MinDistance float32 `yaml:"min_distance"`
	Sensitivity float32 `yaml:"sensitivity"`
	ZoomIn      float32 `yaml:"zoom_in"`
	ZoomOut     float32 `yaml:"zoom_out"`
}

// Home is the starting view.
func (o Orbit) Home() camera.OrbitView {
	return camera.OrbitView{Distance: o.Distance, Yaw: o.Yaw, Pitch: o.Pitch}
}

// Limits converts to the orbit camera's bounds.
func (o Orbit) Limits() camera.OrbitLimits {
	return camera.OrbitLimits{MinDistance: o.MinDistance, Sensitivity: o.Sensitivity, ZoomIn: o.ZoomIn, ZoomOut: o.ZoomOut}
}

type Texture struct {
	// Path to an image file; empty shows the checkerboard.
	Path string `yaml:"path"`
	// Colormap, when set, recolours the texture by luminance.
	Colormap string `yaml:"colormap"`
	// MaxSize downsamples larger images.
	MaxSize int `yaml:"max_size"`
}

// Binding maps a key chord to an action.
type Binding struct {
	Key     string   `yaml:"key"`
	Mods    []string `yaml:"mods,omitempty"`
	Action  string   `yaml:"action"`
	Message string   `yaml:"message,omitempty"`
}

// Default returns the image viewer settings.
func Default() Config {
	lim := camera.DefaultLimits()
	orb := camera.DefaultOrbitLimits()
	return Config{
		Window: Window{
			Title:        "image_2d",
			Width:        960,
			Height:       600,
			SwapInterval: 1,
			ClearColor:   "white",
		},
		Render: Render{
			MaxFPS:         30,
			ReportInterval: 5 * time.Second,
		},
		Camera2D: Camera2D{
			Zoom:        1,
			ZoomMin:     lim.ZoomMin,
			ZoomMax:     lim.ZoomMax,
			ScrollSpeed: lim.ScrollSpeed,
			MoveSpeed:   lim.MoveSpeed,
		},
		Orbit: Orbit{
			Distance:    3,
			Yaw:         0.7,
			Pitch:       0.4,
			MinDistance: orb.MinDistance,
			Sensitivity: orb.Sensitivity,
			ZoomIn:      orb.ZoomIn,
			ZoomOut:     orb.ZoomOut,
		},
		Texture: Texture{MaxSize: 4096},
		Keys: []Binding{
			{Key: "escape", Action: "close"},
			{Key: "s", Mods: []string{"ctrl"}, Action: "log", Message: "Ctrl + S pressed"},
			{Key: "a", Mods: []string{"shift"}, Action: "log", Message: "Shift + A pressed"},
			{Key: "d", Mods: []string{"ctrl", "alt"}, Action: "log", Message: "Ctrl + Alt + D pressed"},
		},
	}
}

// Decode overlays YAML onto base. Fields absent from data keep base values;
// a keys list in data replaces the base list.
func Decode(data []byte, base Config) (Config, error) {
	cfg := base
	cfg.Keys = append([]Binding(nil), base.Keys...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Load reads path over base. An empty path or a missing file yields base.
func Load(path string, base Config, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("config file not found, using defaults", "path", path)
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate replaces out-of-range values with those from base, logging a
// warning for each.
func (c Config) Validate(base Config, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}
	warn := func(field string, got, using any) {
		logger.Warn("invalid config value, using default", "field", field, "value", got, "default", using)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		warn("window.size", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height), fmt.Sprintf("%dx%d", base.Window.Width, base.Window.Height))
		c.Window.Width, c.Window.Height = base.Window.Width, base.Window.Height
	}
	if c.Window.SwapInterval < 0 {
		warn("window.swap_interval", c.Window.SwapInterval, base.Window.SwapInterval)
		c.Window.SwapInterval = base.Window.SwapInterval
	}
	if _, err := ParseColor(c.Window.ClearColor); err != nil {
		warn("window.clear_color", c.Window.ClearColor, base.Window.ClearColor)
		c.Window.ClearColor = base.Window.ClearColor
	}
	if c.Render.MaxFPS < 0 {
		warn("render.max_fps", c.Render.MaxFPS, base.Render.MaxFPS)
		c.Render.MaxFPS = base.Render.MaxFPS
	}
	if c.Render.ReportInterval < 0 {
		warn("render.report_interval", c.Render.ReportInterval, base.Render.ReportInterval)
		c.Render.ReportInterval = base.Render.ReportInterval
	}

	cam := &c.Camera2D
	if cam.ZoomMin <= 0 || cam.ZoomMax < cam.ZoomMin {
		warn("camera2d.zoom_range", fmt.Sprintf("%g..%g", cam.ZoomMin, cam.ZoomMax), fmt.Sprintf("%g..%g", base.Camera2D.ZoomMin, base.Camera2D.ZoomMax))
		cam.ZoomMin, cam.ZoomMax = base.Camera2D.ZoomMin, base.Camera2D.ZoomMax
	}
	if cam.Zoom <= 0 {
		warn("camera2d.zoom", cam.Zoom, base.Camera2D.Zoom)
		cam.Zoom = base.Camera2D.Zoom
	}
	if cam.ScrollSpeed <= 0 {
		warn("camera2d.scroll_speed", cam.ScrollSpeed, base.Camera2D.ScrollSpeed)
		cam.ScrollSpeed = base.Camera2D.ScrollSpeed
	}
	if cam.MoveSpeed <= 0 {
		warn("camera2d.move_speed", cam.MoveSpeed, base.Camera2D.MoveSpeed)
		cam.MoveSpeed = base.Camera2D.MoveSpeed
	}

	orb := &c.Orbit
	if orb.MinDistance <= 0 {
		warn("orbit.min_distance", orb.MinDistance, base.Orbit.MinDistance)
		orb.MinDistance = base.Orbit.MinDistance
	}
	if orb.Distance <= 0 {
		warn("orbit.distance", orb.Distance, base.Orbit.Distance)
		orb.Distance = base.Orbit.Distance
	}
	if orb.Sensitivity <= 0 {
		warn("orbit.sensitivity", orb.Sensitivity, base.Orbit.Sensitivity)
		orb.Sensitivity = base.Orbit.Sensitivity
	}
	if orb.ZoomIn <= 0 || orb.ZoomIn >= 1 {
		warn("orbit.zoom_in", orb.ZoomIn, base.Orbit.ZoomIn)
		orb.ZoomIn = base.Orbit.ZoomIn
	}
	if orb.ZoomOut <= 1 {
		warn("orbit.zoom_out", orb.ZoomOut, base.Orbit.ZoomOut)
		orb.ZoomOut = base.Orbit.ZoomOut
	}
	return c
}

// ClearColor returns the parsed window clear colour, white when invalid.
func (c Config) ClearColor() color.NRGBA {
	col, err := ParseColor(c.Window.ClearColor)
	if err != nil {
		return color.NRGBA{0xff, 0xff, 0xff, 0xff}
	}
	return col
}

// ParseColor accepts an SVG colour name ("white", "darkslategray") or
// #rrggbb / #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	rgba, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, nil
}
