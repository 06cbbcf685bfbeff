// Package config loads the fmtstr command line settings from a TOML file.
//
//	color = "auto"
//
//	[presets]
//	money = "{:+010.2f}"
//	hex   = "0x{:08x}"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when no path is given and the file exists.
const DefaultPath = "fmtstr.toml"

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidColor  = errors.New("invalid color mode")
)

// Config holds the settings of a config file. The zero value is valid.
type Config struct {
	Color   string            `toml:"color"`
	Presets map[string]string `toml:"presets"`

	// Unknown lists keys in the file that did not map to a field.
	Unknown []string `toml:"-"`
}

// ParseError is returned when a config file cannot be decoded.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the config file at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse decodes TOML text. source names the text in errors.
func Parse(source, data string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		pe := &ParseError{Path: source, Err: err}
		var te toml.ParseError
		if errors.As(err, &te) {
			pe.Line = te.Position.Line
		}
		return nil, pe
	}
	for _, k := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	return &cfg, nil
}

// Validate checks the color mode.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Color) {
	case "", ColorAuto, ColorOn, ColorOff:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
	}
}

// ColorMode returns the configured color mode, defaulting to [ColorAuto].
func (c *Config) ColorMode() string {
	if c.Color == "" {
		return ColorAuto
	}
	return strings.ToLower(c.Color)
}

// Preset returns the format string stored under name.
func (c *Config) Preset(name string) (string, error) {
	f, ok := c.Presets[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return f, nil
}

// PresetNames returns the preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for k := range c.Presets {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
