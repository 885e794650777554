package telemetry

import "fmt"

// Config holds tracing settings.
type Config struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func (c *Config) defaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.ServiceName == "" {
		c.ServiceName = "walletclaw"
	}
	if c.SampleRatio == 0 {
		c.SampleRatio = 1.0
	}
}

func (c *Config) validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("sample_ratio must be between 0 and 1, got %f", c.SampleRatio)
	}
	if c.Enabled && c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when tracing is enabled")
	}
	return nil
}
