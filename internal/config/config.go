// Package config loads overlayctl settings and overlay declarations.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/pattern"
)

// File names looked up by LoadConfig, in priority order
const (
	JSONFileName = ".overlayctl.json"
	TOMLFileName = ".overlayctl.toml"
)

// Config represents the full overlayctl configuration
type Config struct {
	QueryParameter string          `json:"queryParameter" toml:"queryParameter"`
	StripUnknownID *bool           `json:"stripUnknownId,omitempty" toml:"stripUnknownId"`
	Fallback       *FallbackConfig `json:"fallback,omitempty" toml:"fallback"`
	StartLocation  string          `json:"startLocation" toml:"startLocation"`
	Routes         []string        `json:"routes" toml:"routes"`
	Overlays       []OverlayConfig `json:"overlays" toml:"overlays"`
	Log            LogConfig       `json:"log" toml:"log"`
}

// OverlayConfig declares one overlay with static text content
type OverlayConfig struct {
	ID       string         `json:"id" toml:"id"`
	Title    string         `json:"title,omitempty" toml:"title"`
	Body     string         `json:"body,omitempty" toml:"body"`
	Width    int            `json:"width,omitempty" toml:"width"`
	Height   int            `json:"height,omitempty" toml:"height"`
	Suppress *PatternConfig `json:"suppress,omitempty" toml:"suppress"`
	ShowOnly *PatternConfig `json:"showOnly,omitempty" toml:"showOnly"`
}

// PatternConfig selects a pattern engine and source
type PatternConfig struct {
	Engine  string `json:"engine,omitempty" toml:"engine"`
	Pattern string `json:"pattern" toml:"pattern"`
}

// FallbackConfig is the content shown for unknown ids when stripping is off
type FallbackConfig struct {
	Title string `json:"title,omitempty" toml:"title"`
	Body  string `json:"body,omitempty" toml:"body"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `json:"level" toml:"level"`
	Format string `json:"format" toml:"format"`
	File   string `json:"file,omitempty" toml:"file"`
}

// DefaultConfig returns a Config with a small demo site
func DefaultConfig() *Config {
	strip := true
	return &Config{
		QueryParameter: "modal",
		StripUnknownID: &strip,
		StartLocation:  "/",
		Routes: []string{
			"/",
			"/settings",
			"/settings/billing",
			"/checkout",
			"/admin/users",
		},
		Overlays: []OverlayConfig{
			{
				ID:    "help",
				Title: "Help",
				Body:  "Keyboard shortcuts and where to find things.",
			},
			{
				ID:       "billing",
				Title:    "Billing details",
				Body:     "Update the card on file.",
				ShowOnly: &PatternConfig{Engine: pattern.EngineGlob, Pattern: "/settings/**"},
			},
			{
				ID:       "promo",
				Title:    "Spring sale",
				Body:     "Everything is 20% off this week.",
				Suppress: &PatternConfig{Engine: pattern.EngineECMAScript, Pattern: `^/(checkout|admin)`},
			},
			{
				ID:       "audit",
				Title:    "Audit log",
				Body:     "Recent administrative changes.",
				ShowOnly: &PatternConfig{Engine: pattern.EngineCEL, Pattern: `path.startsWith('/admin')`},
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// StripUnknown reports whether unknown ids are removed from the URL
func (c *Config) StripUnknown() bool {
	return c.StripUnknownID == nil || *c.StripUnknownID
}

// LoadConfig loads configuration from dir with priority:
// 1. .overlayctl.json (with version migration support)
// 2. .overlayctl.toml
// 3. Defaults
func LoadConfig(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, JSONFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return LoadFile(jsonPath)
	}

	tomlPath := filepath.Join(dir, TOMLFileName)
	if _, err := os.Stat(tomlPath); err == nil {
		return LoadFile(tomlPath)
	}

	return DefaultConfig(), nil
}

// LoadFile loads an explicit config file. Files ending in .toml are decoded
// as TOML, everything else as versioned JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg = &Config{}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, &domain.ConfigError{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
		}
	} else {
		cfg, err = ParseVersionedConfig(data)
		if err != nil {
			return nil, &domain.ConfigError{Path: path, Err: err}
		}
	}

	cfg = MergeWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.QueryParameter == "" {
		cfg.QueryParameter = defaults.QueryParameter
	}
	if cfg.StripUnknownID == nil {
		cfg.StripUnknownID = defaults.StripUnknownID
	}
	if cfg.StartLocation == "" {
		cfg.StartLocation = defaults.StartLocation
	}
	if cfg.Routes == nil {
		cfg.Routes = defaults.Routes
	}
	if cfg.Overlays == nil {
		cfg.Overlays = defaults.Overlays
	}

	// Merge Log config
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}

	return cfg
}

// Validate checks ids and compiles every pattern once
func (c *Config) Validate() error {
	var errs []error
	for i, o := range c.Overlays {
		if o.ID == "" {
			errs = append(errs, fmt.Errorf("overlays[%d]: id is required", i))
			continue
		}
		if _, err := o.matchers(); err != nil {
			errs = append(errs, fmt.Errorf("overlay %q: %w", o.ID, err))
		}
	}
	return errors.Join(errs...)
}

type compiled struct {
	suppress domain.Matcher
	showOnly domain.Matcher
}

func (o OverlayConfig) matchers() (compiled, error) {
	var out compiled
	if o.Suppress != nil {
		m, err := pattern.Compile(o.Suppress.Engine, o.Suppress.Pattern)
		if err != nil {
			return compiled{}, fmt.Errorf("suppress: %w", err)
		}
		out.suppress = m
	}
	if o.ShowOnly != nil {
		m, err := pattern.Compile(o.ShowOnly.Engine, o.ShowOnly.Pattern)
		if err != nil {
			return compiled{}, fmt.Errorf("showOnly: %w", err)
		}
		out.showOnly = m
	}
	return out, nil
}

// Definitions converts the overlay declarations into registry definitions,
// in config order. content builds the renderable payload for each overlay.
func (c *Config) Definitions(content func(OverlayConfig) any) ([]domain.Definition, error) {
	defs := make([]domain.Definition, 0, len(c.Overlays))
	for _, o := range c.Overlays {
		m, err := o.matchers()
		if err != nil {
			return nil, fmt.Errorf("overlay %q: %w", o.ID, err)
		}
		def := domain.Definition{
			ID:       o.ID,
			Suppress: m.suppress,
			ShowOnly: m.showOnly,
		}
		if content != nil {
			def.Content = content(o)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

// String renders the config as indented JSON, for debugging
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return string(data)
}
