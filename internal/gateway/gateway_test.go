package gateway

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flemzord/walletclaw/internal/memory"
	"github.com/flemzord/walletclaw/internal/provider"
)

type staticLister []string

func (s staticLister) Channels() []string { return s }

func seededStore(t *testing.T, users int) memory.Store {
	t.Helper()
	store := memory.NewInMemoryStore()
	for i := range users {
		id := string(rune('a' + i))
		if _, err := store.GetOrCreate(id); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	g := &Gateway{store: seededStore(t, 3)}

	rec := httptest.NewRecorder()
	g.handleHealth()(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.Conversations != 3 {
		t.Errorf("Conversations = %d, want 3", resp.Conversations)
	}
}

type staticProvider struct{}

func (staticProvider) Generate(_ context.Context, _ provider.GenerateRequest) (provider.GenerateResponse, error) {
	return provider.GenerateResponse{}, nil
}

func (staticProvider) ModelName() string { return "gemini-2.5-flash" }

func TestHandleStatus(t *testing.T) {
	t.Parallel()

	g := &Gateway{
		store:     seededStore(t, 1),
		provider:  staticProvider{},
		channels:  staticLister{"channel.telegram"},
		startedAt: time.Now().Add(-time.Minute),
	}

	rec := httptest.NewRecorder()
	g.handleStatus()(rec, httptest.NewRequest("GET", "/status", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want gemini-2.5-flash", resp.Model)
	}
	if len(resp.Channels) != 1 || resp.Channels[0] != "channel.telegram" {
		t.Errorf("Channels = %v, want [channel.telegram]", resp.Channels)
	}
	if resp.UptimeSeconds < 59 {
		t.Errorf("UptimeSeconds = %f, want about a minute", resp.UptimeSeconds)
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var c Config
	c.defaults()

	if c.Bind != "127.0.0.1:8080" {
		t.Errorf("Bind = %q, want 127.0.0.1:8080", c.Bind)
	}
	if c.ReadTimeout != 10*time.Second || c.WriteTimeout != 30*time.Second {
		t.Errorf("timeouts = %s/%s, want 10s/30s", c.ReadTimeout, c.WriteTimeout)
	}
}

func TestValidate_BindAddress(t *testing.T) {
	t.Parallel()

	g := &Gateway{config: Config{Bind: "not an address"}}
	if err := g.Validate(); err == nil {
		t.Error("Validate accepted an invalid bind address")
	}

	g = &Gateway{config: Config{Bind: "127.0.0.1:9090"}}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate rejected a valid bind address: %v", err)
	}
}
