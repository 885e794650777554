// Package gemini implements the completion provider on the Google Gemini
// API. It registers itself as the "provider" service so the agent and the
// gateway can resolve it without importing this package.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
	"gopkg.in/yaml.v3"

	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/internal/provider"
)

func init() {
	core.RegisterModule(&Gemini{})
}

var (
	_ core.Configurable = (*Gemini)(nil)
	_ core.Provisioner  = (*Gemini)(nil)
	_ core.Validator    = (*Gemini)(nil)
	_ core.Starter      = (*Gemini)(nil)
	_ provider.Provider = (*Gemini)(nil)
)

// Gemini is the Gemini provider module.
type Gemini struct {
	config Config
	logger *slog.Logger
	client *genai.Client
}

// ModuleInfo implements core.Module.
func (g *Gemini) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "provider.gemini",
		New: func() core.Module { return &Gemini{} },
	}
}

// Configure implements core.Configurable.
func (g *Gemini) Configure(node *yaml.Node) error {
	if err := node.Decode(&g.config); err != nil {
		return err
	}
	g.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (g *Gemini) Provision(ctx *core.AppContext) error {
	g.config.defaults()
	g.logger = ctx.Logger
	ctx.RegisterService("provider", g)
	return nil
}

// Validate implements core.Validator.
func (g *Gemini) Validate() error {
	return g.config.validate()
}

// Start implements core.Starter. The client is created here rather than
// in Provision so a config-check run never touches the network path.
func (g *Gemini) Start() error {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  g.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	g.logger.Info("gemini provider ready", "model", g.config.Model)
	return nil
}

// ModelName implements provider.Provider.
func (g *Gemini) ModelName() string {
	return g.config.Model
}

// Generate implements provider.Provider.
func (g *Gemini) Generate(ctx context.Context, req provider.GenerateRequest) (provider.GenerateResponse, error) {
	if g.client == nil {
		return provider.GenerateResponse{}, fmt.Errorf("gemini client not started")
	}

	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	if tools := toTools(req.Tools); tools != nil {
		cfg.Tools = tools
	}

	result, err := g.client.Models.GenerateContent(ctx, g.config.Model, toContents(req.Contents), cfg)
	if err != nil {
		return provider.GenerateResponse{}, fmt.Errorf("generate content: %w", err)
	}

	resp := fromResponse(result)
	g.logger.Debug("model call complete",
		"model", g.config.Model,
		"total_tokens", resp.Usage.TotalTokens)
	return resp, nil
}
