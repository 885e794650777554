// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for walletclaw.
package config

import (
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Modules maps module IDs to their raw YAML configuration.
	// Keys must match registered module IDs (e.g. "channel.telegram").
	Modules map[string]yaml.Node `yaml:"modules"`
}

// ModuleIDs returns the configured module IDs in sorted order, giving
// LoadModules a deterministic instantiation sequence.
func (c *Config) ModuleIDs() []string {
	return slices.Sorted(maps.Keys(c.Modules))
}
