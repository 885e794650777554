package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("WC_TOKEN", "12345:abc")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "set variable",
			input: "token: ${WC_TOKEN}",
			want:  "token: 12345:abc",
		},
		{
			name:  "default used when unset",
			input: "model: ${WC_MODEL:-gemini-2.5-flash}",
			want:  "model: gemini-2.5-flash",
		},
		{
			name:  "env wins over default",
			input: "token: ${WC_TOKEN:-fallback}",
			want:  "token: 12345:abc",
		},
		{
			name:  "empty default",
			input: "opt: ${WC_UNSET:-}",
			want:  "opt: ",
		},
		{
			name:    "unresolved variable",
			input:   "key: ${WC_DEFINITELY_MISSING}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnv([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unresolved variable")
				}
				if !strings.Contains(err.Error(), "unresolved") {
					t.Errorf("error = %v, want mention of unresolved variable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expandEnv = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("WC_API_KEY", "secret-key")

	dir := t.TempDir()
	path := filepath.Join(dir, "walletclaw.yaml")
	content := `version: "1"
modules:
  provider.gemini:
    api_key: ${WC_API_KEY}
    model: ${WC_MODEL:-gemini-2.5-flash}
  channel.telegram:
    token: "12345:abc"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("Version = %q, want 1", cfg.Version)
	}
	if len(cfg.Modules) != 2 {
		t.Fatalf("Modules count = %d, want 2", len(cfg.Modules))
	}

	node := cfg.Modules["provider.gemini"]
	var parsed struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	}
	if err := node.Decode(&parsed); err != nil {
		t.Fatalf("decode provider config: %v", err)
	}
	if parsed.APIKey != "secret-key" {
		t.Errorf("api_key = %q, want expanded env value", parsed.APIKey)
	}
	if parsed.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q, want the default", parsed.Model)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestModuleIDs_Sorted(t *testing.T) {
	cfg := &Config{Modules: map[string]yaml.Node{
		"tool.moneylover":  {},
		"channel.telegram": {},
		"provider.gemini":  {},
	}}

	ids := cfg.ModuleIDs()
	want := []string{"channel.telegram", "provider.gemini", "tool.moneylover"}
	if len(ids) != len(want) {
		t.Fatalf("ModuleIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
