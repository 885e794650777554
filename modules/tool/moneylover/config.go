package moneylover

import "errors"

// Config holds the MoneyLover tool server settings. The server is an MCP
// subprocess launched per exchange; credentials are passed through its
// environment, never on the command line.
type Config struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
}

func (c *Config) defaults() {
	if c.Command == "" {
		c.Command = "npx"
	}
	if len(c.Args) == 0 {
		c.Args = []string{"-y", "@ferdhika31/moneylover-mcp@latest"}
	}
}

func (c *Config) validate() error {
	if c.Command == "" {
		return errors.New("command is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
