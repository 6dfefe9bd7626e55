package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/bitgrid/internal/format"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile   = "grid.cpp"
	DefaultWidth  = 16
	DefaultHeight = 8
	// DefaultMargin is subtracted from each screen dimension before sizing cells.
	DefaultMargin = 100
	// DefaultMaxScale caps the edge length of one rendered cell.
	DefaultMaxScale = 20
	DefaultFPS      = 60
)

// Environment variables read by ApplyEnv.
const (
	EnvFile      = "BITGRID_FILE"
	EnvWidth     = "BITGRID_WIDTH"
	EnvHeight    = "BITGRID_HEIGHT"
	EnvLogLevel  = "BITGRID_LOG_LEVEL"
	EnvLogFormat = "BITGRID_LOG_FORMAT"
)

type Config struct {
	File        string        `yaml:"file"`
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Declaration string        `yaml:"declaration"`
	View        ViewConfig    `yaml:"view"`
	Palette     PaletteConfig `yaml:"palette"`
	Log         LogConfig     `yaml:"log"`
}

type ViewConfig struct {
	Margin   int `yaml:"margin"`
	MaxScale int `yaml:"max_scale"`
	FPS      int `yaml:"fps"`
}

// PaletteConfig holds hex colors such as "#ffff00".
type PaletteConfig struct {
	Background string `yaml:"background"`
	On         string `yaml:"on"`
	Off        string `yaml:"off"`
	Grid       string `yaml:"grid"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		File:        DefaultFile,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Declaration: format.DefaultDeclaration,
		View: ViewConfig{
			Margin:   DefaultMargin,
			MaxScale: DefaultMaxScale,
			FPS:      DefaultFPS,
		},
		Palette: PaletteConfig{
			Background: "#323232",
			On:         "#ffff00",
			Off:        "#000000",
			Grid:       "#0096ff",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads the given .env files (missing files are ignored) and then
// overrides cfg from BITGRID_* variables already present in the environment.
func (c *Config) ApplyEnv(envFiles ...string) error {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvFile); v != "" {
		c.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	for name, dst := range map[string]*int{EnvWidth: &c.Width, EnvHeight: &c.Height} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}
	return nil
}

// Validate rejects settings the editor cannot run with. It is called after
// file, env and flag values are merged.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("config: file path is empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: grid size %dx%d must be positive", c.Width, c.Height)
	}
	if c.View.MaxScale <= 0 {
		return fmt.Errorf("config: max_scale %d must be positive", c.View.MaxScale)
	}
	if c.View.Margin < 0 {
		return fmt.Errorf("config: margin %d must not be negative", c.View.Margin)
	}
	if c.View.FPS < 0 {
		return fmt.Errorf("config: fps %d must not be negative", c.View.FPS)
	}
	if err := format.CheckDeclaration(c.Declaration); err != nil {
		return fmt.Errorf("config: declaration: %w", err)
	}
	for _, hex := range []string{c.Palette.Background, c.Palette.On, c.Palette.Off, c.Palette.Grid} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("config: palette color %q: %w", hex, err)
		}
	}
	return nil
}
