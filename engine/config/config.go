// Package config loads sandbox settings from an optional YAML file, then
// applies GL2D_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/gl2d/engine/colors"
	"github.com/hubastard/gl2d/engine/core"
	applog "github.com/hubastard/gl2d/engine/log"
)

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	VSync     bool   `yaml:"vsync"`
	Resizable bool   `yaml:"resizable"`
}

type RenderConfig struct {
	ClearColor string `yaml:"clear_color"` // palette name or #rrggbb[aa]
	MaxQuads   int    `yaml:"max_quads"`
	TickRate   int    `yaml:"tick_rate"`
	Swatches   bool   `yaml:"swatches"`
}

// AssetsConfig paths override the embedded shaders and the generated
// checkerboard. Empty means built in.
type AssetsConfig struct {
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
	Texture        string `yaml:"texture"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Window        WindowConfig  `yaml:"window"`
	Render        RenderConfig  `yaml:"render"`
	Assets        AssetsConfig  `yaml:"assets"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Window:        WindowConfig{Title: "LearnOpenGL", Width: 800, Height: 600, VSync: true},
		Render:        RenderConfig{ClearColor: "goodie", MaxQuads: 1000, TickRate: 60, Swatches: true},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvWidth      = "GL2D_WIDTH"
	EnvHeight     = "GL2D_HEIGHT"
	EnvVSync      = "GL2D_VSYNC"
	EnvClearColor = "GL2D_CLEAR_COLOR"
	EnvTexture    = "GL2D_TEXTURE"
	EnvLogSource  = "GL2D_LOG_SOURCE"
)

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	return nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error
	atoi := func(name string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	atoi(EnvWidth, &cfg.Window.Width)
	atoi(EnvHeight, &cfg.Window.Height)

	if v := strings.TrimSpace(os.Getenv(EnvVSync)); v != "" {
		cfg.Window.VSync = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvClearColor)); v != "" {
		cfg.Render.ClearColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTexture)); v != "" {
		cfg.Assets.Texture = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(applog.EnvLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvFile)); v != "" {
		cfg.Logging.File = v
	}
	return errors.Join(errs...)
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, err := colors.Parse(c.Render.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("render.clear_color: %w", err))
	}
	if c.Render.MaxQuads < 0 {
		errs = append(errs, fmt.Errorf("render.max_quads %d is negative", c.Render.MaxQuads))
	}
	if c.Render.TickRate < 0 {
		errs = append(errs, fmt.Errorf("render.tick_rate %d is negative", c.Render.TickRate))
	}
	if (c.Assets.VertexShader == "") != (c.Assets.FragmentShader == "") {
		errs = append(errs, errors.New("assets: vertex_shader and fragment_shader must be set together"))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want console or json", c.Logging.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Engine converts the window and render sections for core.Run.
func (c Config) Engine() (core.Config, error) {
	bg, err := colors.Parse(c.Render.ClearColor)
	if err != nil {
		return core.Config{}, err
	}
	return core.Config{
		Title:      c.Window.Title,
		Width:      c.Window.Width,
		Height:     c.Window.Height,
		VSync:      c.Window.VSync,
		Resizable:  c.Window.Resizable,
		ClearColor: bg,
		TickRate:   c.Render.TickRate,
	}, nil
}

// Log converts the logging section for log.Init.
func (c Config) Log() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}
