// Package config loads the settings shared by the binaries: simulation
// parameters, host window options and logging.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"falling-sand/internal/logging"
	"falling-sand/internal/sims/sand"
)

// AppConfig holds host window options.
type AppConfig struct {
	Scale      int  `yaml:"scale" toml:"scale"`
	TPS        int  `yaml:"tps" toml:"tps"`
	PanelWidth int  `yaml:"panel_width" toml:"panel_width"`
	Paused     bool `yaml:"paused" toml:"paused"`
}

// Settings is the full configuration tree.
type Settings struct {
	Sim     sand.Config    `yaml:"sim" toml:"sim"`
	App     AppConfig      `yaml:"app" toml:"app"`
	Logging logging.Config `yaml:"logging" toml:"logging"`
}

// Default returns the built-in settings.
func Default() Settings {
	sim := sand.DefaultConfig()
	sim.ChunkSize = 256
	return Settings{
		Sim:     sim,
		App:     AppConfig{Scale: 3, TPS: 60, PanelWidth: 260},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a settings file over the defaults. Files ending in .toml are
// decoded as TOML, anything else as YAML. Only keys present in the file
// override defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, s.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading config file: %w", err)
	}
	if err := s.decode(path, data); err != nil {
		return s, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return s, s.Validate()
}

func (s *Settings) decode(path string, data []byte) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), s)
		return err
	}
	return yaml.Unmarshal(data, s)
}

// Validate checks every section.
func (s Settings) Validate() error {
	var errs []error
	if err := s.Sim.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.App.Scale < 1 {
		errs = append(errs, fmt.Errorf("app.scale must be >= 1, got %d", s.App.Scale))
	}
	if s.App.TPS < 1 {
		errs = append(errs, fmt.Errorf("app.tps must be >= 1, got %d", s.App.TPS))
	}
	if s.App.PanelWidth < 0 {
		errs = append(errs, fmt.Errorf("app.panel_width must not be negative, got %d", s.App.PanelWidth))
	}
	return errors.Join(errs...)
}

// WriteYAML snapshots the effective settings.
func (s Settings) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// WriteTOML snapshots the effective settings as TOML.
func (s Settings) WriteTOML(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Write picks the encoding from the file extension, like Load.
func (s Settings) Write(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return s.WriteTOML(path)
	}
	return s.WriteYAML(path)
}
