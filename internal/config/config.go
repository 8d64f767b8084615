// Package config loads the x2j configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults that can be set from a configuration
// file.  Command line flags take precedence over all of these.
type Config struct {
	// Indent is the indent step for JSON output; negative means a
	// single line.
	Indent int `yaml:"indent"`

	// Compact forces single-line output.
	Compact bool `yaml:"compact"`

	// Color controls colorized output: auto, always or never.
	Color string `yaml:"color"`

	// KeyCase rewrites object keys: none, snake, camel, pascal or kebab.
	KeyCase string `yaml:"key_case"`

	// Namespace is the instruction namespace URI.
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Indent:    2,
		Color:     "auto",
		KeyCase:   "none",
		Namespace: "http://pageseeder.org/JSON",
	}
}

// Load reads the configuration file at path, filling unset fields with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault looks for a configuration file in the standard locations
// ($XDG_CONFIG_HOME/x2j/config.yaml, then ~/.x2j.yaml) and loads the
// first one found.  If none exists the defaults are returned.
func LoadDefault() (Config, error) {
	for _, path := range defaultPaths() {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "x2j", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "x2j", "config.yaml"),
			filepath.Join(home, ".x2j.yaml"),
		)
	}
	return paths
}
