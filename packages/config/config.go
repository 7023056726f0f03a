// Package config loads optional YAML defaults for the CLI flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds run defaults. Flags given on the command line always win;
// boolean fields are pointers so an absent key is distinguishable from an
// explicit false.
type Config struct {
	Reporter string  `yaml:"reporter,omitempty"`
	Output   string  `yaml:"output,omitempty"`
	Timeout  int     `yaml:"timeout,omitempty"` // milliseconds
	Delay    int     `yaml:"delay,omitempty"`   // milliseconds
	Rate     float64 `yaml:"rate,omitempty"`    // requests per second
	Bail     *bool   `yaml:"bail,omitempty"`
	Verbose  *bool   `yaml:"verbose,omitempty"`
	NoColor  *bool   `yaml:"noColor,omitempty"`
}

// Filenames are the config files probed in the working directory, in order.
var Filenames = []string{
	".postman-helper.yaml",
	"postman-helper.yaml",
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// Load reads the config at path, or probes the default filenames when path
// is empty. A missing config is not an error; an empty Config is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, name := range Filenames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}
