// Package config loads golox settings from a TOML or YAML file.
//
// The format follows the file extension: .toml is read with BurntSushi/toml,
// .yaml and .yml with yaml.v3. Keys missing from a file keep the values from
// [Default]. Environment variables prefixed GOLOX_ override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format int

const (
	// FormatTOML is the default when the extension is not recognized.
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ColorMode controls colored diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds every setting the CLI reads.
type Config struct {
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// REPLConfig configures the interactive prompt.
type REPLConfig struct {
	Prompt string `toml:"prompt" yaml:"prompt"`
	// Echo prints the value of lines that are a bare expression.
	Echo   bool   `toml:"echo" yaml:"echo"`
}

type OutputConfig struct {
	Color ColorMode `toml:"color" yaml:"color"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		REPL:   REPLConfig{Prompt: "> ", Echo: true},
		Output: OutputConfig{Color: ColorAuto},
		Log:    LogConfig{Level: "warn"},
	}
}

// FileNames are the names [Discover] looks for, in order.
var FileNames = []string{"golox.toml", "golox.yaml", "golox.yml"}

// ErrNotFound is returned by [Discover] when no configuration file exists.
var ErrNotFound = errors.New("config: no configuration file found")

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content in the given format over the defaults, applies
// environment overrides and validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover looks for one of [FileNames] in dir, then in
// $HOME/.config/golox. It returns the first path that exists.
func Discover(dir string) (string, error) {
	dirs := []string{dir}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "golox"))
	}
	for _, d := range dirs {
		for _, name := range FileNames {
			path := filepath.Join(d, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", ErrNotFound
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config: output.color must be auto, always or never, got %q", c.Output.Color)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

// UseColor resolves the color mode against whether output is a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Output.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log.level: unknown level %q", s)
	}
	return l, nil
}

// ── Environment overrides ─────────────────────────────────────────────────────

const envPrefix = "GOLOX_"

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "PROMPT"); ok {
		c.REPL.Prompt = v
	}
	if v, ok := lookup(envPrefix + "ECHO"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sECHO: %w", envPrefix, err)
		}
		c.REPL.Echo = b
	}
	if v, ok := lookup(envPrefix + "COLOR"); ok {
		c.Output.Color = ColorMode(strings.ToLower(v))
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	return nil
}
