package app

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/walletclaw/internal/core"
)

func init() {
	core.RegisterModule(&Settings{})
}

var (
	_ core.Configurable = (*Settings)(nil)
	_ core.Validator    = (*Settings)(nil)
)

// SettingsConfig holds the agent wiring knobs: memory budget, compression
// strategy, janitor schedule, and router sizing. It has no lifecycle of
// its own; wireRouter reads it after LoadModules.
type SettingsConfig struct {
	SystemInstruction string        `yaml:"system_instruction"`
	TokenLimit        int           `yaml:"token_limit"`
	Compression       string        `yaml:"compression"`
	JanitorSchedule   string        `yaml:"janitor_schedule"`
	MaxIdle           time.Duration `yaml:"max_idle"`
	Workers           int           `yaml:"workers"`
	InboxSize         int           `yaml:"inbox_size"`
}

func (c *SettingsConfig) defaults() {
	if c.TokenLimit == 0 {
		c.TokenLimit = 50000
	}
	if c.Compression == "" {
		c.Compression = "summarize"
	}
	if c.JanitorSchedule == "" {
		c.JanitorSchedule = "@every 1h"
	}
	if c.MaxIdle == 0 {
		c.MaxIdle = 24 * time.Hour
	}
}

// Settings is the "agent" config module.
type Settings struct {
	config SettingsConfig
}

// ModuleInfo implements core.Module.
func (s *Settings) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "agent",
		New: func() core.Module { return &Settings{} },
	}
}

// Configure implements core.Configurable.
func (s *Settings) Configure(node *yaml.Node) error {
	if err := node.Decode(&s.config); err != nil {
		return fmt.Errorf("agent: decode config: %w", err)
	}
	s.config.defaults()
	return nil
}

// Validate implements core.Validator.
func (s *Settings) Validate() error {
	s.config.defaults()
	switch s.config.Compression {
	case "summarize", "reset":
	default:
		return fmt.Errorf("agent: invalid compression %q (must be \"summarize\" or \"reset\")", s.config.Compression)
	}
	if s.config.TokenLimit < 1 {
		return fmt.Errorf("agent: token_limit must be positive, got %d", s.config.TokenLimit)
	}
	return nil
}
