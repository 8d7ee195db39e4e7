// Package config loads the optional run configuration file that backs the
// design CLI's defaults (spec §6): which overhead plugin to load, how many
// cores to use, how many pins each BMS slave has, and how many ranked
// solutions to keep.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	OverheadPlugin      string `yaml:"overhead_plugin"`
	Cores               int    `yaml:"cores"`
	PinsPerSlave         int    `yaml:"pins_per_slave"`
	MaxNumberOfSolutions int    `yaml:"max_number_of_solutions"`
}

// Default returns the run configuration used when no config file is given.
func Default() Config {
	return Config{
		OverheadPlugin:       "default",
		Cores:                1,
		PinsPerSlave:         12,
		MaxNumberOfSolutions: 10,
	}
}

// Load reads and validates a run configuration file, filling in defaults
// for any field left unset.
func Load(path string) (Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return Config{}, err
	}
	if c.OverheadPlugin == "" {
		c.OverheadPlugin = "default"
	}
	if c.Cores == 0 {
		c.Cores = 1
	}
	if c.PinsPerSlave == 0 {
		c.PinsPerSlave = 12
	}
	if c.MaxNumberOfSolutions == 0 {
		c.MaxNumberOfSolutions = 10
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadUnchecked loads the configuration without validating or defaulting
// it, useful for debugging or printing a partial configuration.
func LoadUnchecked(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the configuration's numeric fields are usable.
func (c Config) Validate() error {
	if c.Cores <= 0 {
		return errors.New("config: cores must be > 0")
	}
	if c.PinsPerSlave <= 0 {
		return errors.New("config: pins_per_slave must be > 0")
	}
	if c.MaxNumberOfSolutions <= 0 {
		return errors.New("config: max_number_of_solutions must be > 0")
	}
	return nil
}
