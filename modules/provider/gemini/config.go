package gemini

import "errors"

const defaultModel = "gemini-2.5-flash"

// Config holds the Gemini provider settings.
type Config struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

func (c *Config) defaults() {
	if c.Model == "" {
		c.Model = defaultModel
	}
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return errors.New("api_key is required")
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	return nil
}
