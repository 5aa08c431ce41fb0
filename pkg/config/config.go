// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScaleMethod selects how extracted frames are scaled to a target size.
const (
	ScaleFit     = "fit"
	ScaleStretch = "stretch"
	ScaleCrop    = "crop"
)

// Global holds the settings shared by every layout preset.
type Global struct {
	LogoFile string     `yaml:"logo_file"`
	Fonts    []FontSpec `yaml:"fonts"`

	// Snapshot planning
	AvoidLeading          bool `yaml:"avoid_leading"`
	AvoidEnding           bool `yaml:"avoid_ending"`
	SkipSecondsFromHead   int  `yaml:"skip_seconds_from_head"`
	DiscardSecondsFromEnd int  `yaml:"discard_seconds_from_end"`

	// Output
	ResizeScale          int    `yaml:"resize_scale"`
	OutputFilenameFormat string `yaml:"output_filename_format"`
	ScaleMethod          string `yaml:"scale_method"`

	MaxTextLines int `yaml:"max_text_lines"`
	Workers      int `yaml:"workers"`
}

// FontSpec names one loadable font face.
type FontSpec struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// GlobalDefaults returns a Global with default values.
func GlobalDefaults() Global {
	return Global{
		AvoidLeading:          false,
		AvoidEnding:           false,
		SkipSecondsFromHead:   0,
		DiscardSecondsFromEnd: 1,
		ResizeScale:           1,
		OutputFilenameFormat:  "{timestamp:%H%M%S}.scan.{file_name}.png",
		ScaleMethod:           ScaleFit,
		MaxTextLines:          3,
		Workers:               0, // 0 means one worker per CPU
	}
}

// Validate reports the first configuration-shape problem.
func (g *Global) Validate() error {
	if g.LogoFile == "" {
		return fmt.Errorf("logo_file is required")
	}
	if len(g.Fonts) == 0 {
		return fmt.Errorf("fonts must list at least one font")
	}
	for i, f := range g.Fonts {
		if f.Path == "" {
			return fmt.Errorf("fonts[%d]: path is required", i)
		}
		if f.Size < 1 {
			return fmt.Errorf("fonts[%d]: size must be a positive number, got %g", i, f.Size)
		}
	}
	if g.ResizeScale < 1 {
		return fmt.Errorf("resize_scale must be at least 1, got %d", g.ResizeScale)
	}
	if g.SkipSecondsFromHead < 0 {
		return fmt.Errorf("skip_seconds_from_head must not be negative, got %d", g.SkipSecondsFromHead)
	}
	if g.DiscardSecondsFromEnd < 0 {
		return fmt.Errorf("discard_seconds_from_end must not be negative, got %d", g.DiscardSecondsFromEnd)
	}
	if g.MaxTextLines < 1 {
		return fmt.Errorf("max_text_lines must be at least 1, got %d", g.MaxTextLines)
	}
	if g.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", g.Workers)
	}
	switch g.ScaleMethod {
	case ScaleFit, ScaleStretch, ScaleCrop:
	default:
		return fmt.Errorf("scale_method must be fit, stretch or crop, got %q", g.ScaleMethod)
	}
	if err := ValidateOutputFormat(g.OutputFilenameFormat); err != nil {
		return err
	}
	return nil
}

// Config bundles the global settings with one selected layout preset.
type Config struct {
	Global Global
	Layout Layout
}

// Load reads global settings and the named layout preset from configDir and
// validates them together. Files may be YAML or JSON ("global.yaml",
// "layout/<name>.yaml" and their .yml/.json variants).
func Load(configDir, layoutName string) (*Config, error) {
	globalPath, err := findConfigFile(configDir, "global")
	if err != nil {
		return nil, err
	}
	global, err := LoadGlobal(globalPath)
	if err != nil {
		return nil, err
	}

	layoutPath, err := findConfigFile(filepath.Join(configDir, "layout"), layoutName)
	if err != nil {
		return nil, err
	}
	layout, err := LoadLayout(layoutPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Global: global, Layout: layout}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobal loads and validates the global settings file.
func LoadGlobal(path string) (Global, error) {
	g := GlobalDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return g, fmt.Errorf("read global config: %w", err)
	}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return g, fmt.Errorf("parse global config %s: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return g, fmt.Errorf("global config %s: %w", path, err)
	}
	return g, nil
}

// LoadLayout loads and validates one layout preset file.
func LoadLayout(path string) (Layout, error) {
	l := LayoutDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return l, fmt.Errorf("read layout config: %w", err)
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("parse layout config %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("layout config %s: %w", path, err)
	}
	return l, nil
}

// Validate cross-checks the layout's font references against the global
// font list.
func (c *Config) Validate() error {
	maxIndex := len(c.Global.Fonts) - 1
	for _, idx := range c.Layout.FontList {
		if idx < 0 || idx > maxIndex {
			return fmt.Errorf("font_list contains index %d out of bounds (max %d)", idx, maxIndex)
		}
	}
	if c.Layout.TimeFont < 0 || c.Layout.TimeFont > maxIndex {
		return fmt.Errorf("time_font index %d out of bounds (max %d)", c.Layout.TimeFont, maxIndex)
	}
	return nil
}

func findConfigFile(dir, base string) (string, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("config file %s not found under %s", base, dir)
}
