// Package config reads and writes ui.Config files. The format follows the
// extension: .toml, or .yaml / .yml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hubastard/iui/engine/ui"
)

var ErrFormat = errors.New("config: unknown file format")

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, path)
}

// Load reads path over ui.DefaultConfig, so a file only needs the keys it
// changes. The result has defaults applied and is validated.
func Load(path string) (ui.Config, error) {
	cfg := ui.DefaultConfig()
	// Derived from the font height unless the file sets it.
	cfg.TitleHeight = 0
	f, err := formatOf(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(data, f == formatYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, but a missing file yields the defaults.
func LoadOptional(path string) (ui.Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return ui.DefaultConfig(), nil
	}
	return cfg, err
}

// Decode unmarshals data into cfg, keeping fields the data does not set.
func Decode(data []byte, isYAML bool, cfg *ui.Config) error {
	if isYAML {
		return yaml.Unmarshal(data, cfg)
	}
	return toml.Unmarshal(data, cfg)
}

// Save writes cfg to path in the format its extension names.
func Save(path string, cfg ui.Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(cfg)
	default:
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
