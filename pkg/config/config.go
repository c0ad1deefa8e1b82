// Package config loads trisolve's user configuration.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/trisolve/config.toml, or
// ~/.config/trisolve/config.toml when XDG_CONFIG_HOME is unset:
//
//	formats = ["svg", "png"]
//
//	[viewport]
//	width = 1024
//	height = 768
//	padding = 48
//
//	[theme]
//	stroke = "#22d3ee"
//
//	[server]
//	addr = ":8080"
//	otlp_endpoint = "http://localhost:4318"
//
// Fields left out keep their built-in defaults. Command-line flags override
// the file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/render/sink"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
)

const (
	appName  = "trisolve"
	fileName = "config.toml"

	// DefaultAddr is the listen address for "trisolve serve".
	DefaultAddr = ":8080"
)

// Config is the decoded configuration file.
type Config struct {
	Formats  []string          `toml:"formats"`
	Viewport viewport.Viewport `toml:"viewport"`
	Theme    sink.Theme        `toml:"theme"`
	Server   Server            `toml:"server"`
}

// Server configures "trisolve serve".
type Server struct {
	Addr         string `toml:"addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Formats:  []string{pipeline.FormatSVG},
		Viewport: viewport.Default(),
		Theme:    sink.DefaultTheme(),
		Server:   Server{Addr: DefaultAddr},
	}
}

// WithDefaults fills unset fields from [Default].
func (c Config) WithDefaults() Config {
	d := Default()
	if len(c.Formats) == 0 {
		c.Formats = d.Formats
	}
	c.Viewport = c.Viewport.WithDefaults()
	c.Theme = c.Theme.WithDefaults()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	return c
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
	}
	if err := c.Viewport.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "viewport")
	}
	return c.Theme.Validate()
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path. A missing file is not an error and yields
// the defaults; an empty path means [Path].
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates config data. Keys the file omits keep their
// [Default] values, so an explicit "padding = 0" is kept.
func Parse(data []byte) (Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Init writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
