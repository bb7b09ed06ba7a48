package view

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/viewport"
	"github.com/penwyp/go-timeline-view/internal/presentation/display"
)

const (
	DefaultWidth         = 800.0
	DefaultUIRefreshRate = 2.0
	DefaultStateDir      = "~/.go-timeline-view/state"
)

// Config contains configuration shared by the render, segments and view
// commands. It can be loaded from YAML and overridden by flags.
type Config struct {
	// Input
	Files              []string `yaml:"files"`
	SupplementaryFiles []string `yaml:"supplementary_files"`
	Dir                string   `yaml:"dir"`

	// Time axis
	Epoch    string `yaml:"epoch"`
	Timezone string `yaml:"timezone"`

	// Viewport
	Width     float64  `yaml:"width"`
	CellWidth float64  `yaml:"cell_width"`
	Zoom      float64  `yaml:"zoom"`
	Start     *float64 `yaml:"start"`
	Fit       bool     `yaml:"fit"`
	Expand    []string `yaml:"expand"`
	Platform  string   `yaml:"platform"` // auto, mac, other

	// Output
	Output    string `yaml:"output"` // text, json, chart
	Color     bool   `yaml:"color"`
	MaxEvents int    `yaml:"max_events"`

	// Interactive viewer
	UIRefreshRate float64 `yaml:"ui_refresh_rate"`
	Mouse         bool    `yaml:"mouse"`
	RestoreState  bool    `yaml:"restore_state"`
	StateDir      string  `yaml:"state_dir"`

	// Performance settings
	Concurrency int `yaml:"concurrency"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	LogFormat string `yaml:"log_format"`
}

// LoadConfigFile reads a YAML config. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fills defaults and checks the configuration.
func (c *Config) Validate() error {
	if len(c.Files) == 0 && c.Dir == "" {
		return fmt.Errorf("no event files: use --file or --dir")
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Width < 0 {
		return fmt.Errorf("width must be positive, got %g", c.Width)
	}
	if c.CellWidth == 0 {
		c.CellWidth = display.DefaultCellWidth
	}
	if c.CellWidth < 0 {
		return fmt.Errorf("cell-width must be positive, got %g", c.CellWidth)
	}
	if c.Zoom == 0 {
		c.Zoom = constants.DefaultZoom
	}
	if c.Zoom < constants.MinZoom {
		return fmt.Errorf("zoom must be at least %g, got %g", constants.MinZoom, c.Zoom)
	}

	c.Output = strings.ToLower(c.Output)
	switch c.Output {
	case "":
		c.Output = "text"
	case "text", "table", "json", "chart":
	default:
		return fmt.Errorf("invalid output '%s': must be text, json or chart", c.Output)
	}

	c.Platform = strings.ToLower(c.Platform)
	switch c.Platform {
	case "":
		c.Platform = "auto"
	case "auto", "mac", "other":
	default:
		return fmt.Errorf("invalid platform '%s': must be auto, mac or other", c.Platform)
	}

	if c.UIRefreshRate == 0 {
		c.UIRefreshRate = DefaultUIRefreshRate
	}
	if c.UIRefreshRate < 0.1 || c.UIRefreshRate > 20 {
		return fmt.Errorf("refresh-per-second must be between 0.1 and 20")
	}
	if c.MaxEvents < 0 {
		return fmt.Errorf("max-events must not be negative")
	}
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	return nil
}

// ViewportPlatform maps the platform setting to the controller's wheel
// tuning. auto follows the operating system.
func (c *Config) ViewportPlatform() viewport.Platform {
	switch c.Platform {
	case "mac":
		return viewport.PlatformMac
	case "other":
		return viewport.PlatformOther
	}
	if runtime.GOOS == "darwin" {
		return viewport.PlatformMac
	}
	return viewport.PlatformOther
}
