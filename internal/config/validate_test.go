package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name:    "missing version",
			cfg:     &Config{Modules: map[string]yaml.Node{"x": {}}},
			wantErr: "version field is required",
		},
		{
			name:    "unsupported version",
			cfg:     &Config{Version: "2", Modules: map[string]yaml.Node{"x": {}}},
			wantErr: "unsupported version",
		},
		{
			name:    "no modules",
			cfg:     &Config{Version: "1"},
			wantErr: "at least one module",
		},
		{
			name:    "unknown module id",
			cfg:     &Config{Version: "1", Modules: map[string]yaml.Node{"nope.module": {}}},
			wantErr: `unknown module "nope.module"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
