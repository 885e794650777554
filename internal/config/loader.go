package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// envExpr matches ${VAR} and ${VAR:-default} expressions.
var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Load reads the YAML file at path, substitutes environment variables,
// and decodes it into a Config. Secrets like the bot token and the
// Gemini key are expected to arrive through ${VAR} references rather
// than being written into the file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	expanded, err := expandEnv(raw)
	if err != nil {
		return nil, fmt.Errorf("config: expanding variables in %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// expandEnv substitutes ${VAR} and ${VAR:-default} expressions in raw
// YAML bytes. A set environment variable always wins over the default.
// Variables that are unset and carry no default are collected and
// reported together in a single error.
func expandEnv(raw []byte) ([]byte, error) {
	var missing []string

	result := envExpr.ReplaceAllFunc(raw, func(match []byte) []byte {
		groups := envExpr.FindSubmatch(match)
		name := string(groups[1])

		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		if groups[2] != nil {
			return groups[2]
		}

		missing = append(missing, name)
		return match
	})

	if len(missing) > 0 {
		return nil, fmt.Errorf("unresolved variables: %s", strings.Join(missing, ", "))
	}
	return result, nil
}
