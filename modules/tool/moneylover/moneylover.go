// Package moneylover connects the agent to the MoneyLover MCP server. The
// server runs as a stdio subprocess whose lifetime is one exchange: the
// dialer starts it, the session makes at most one tool call, and Close
// terminates it.
package moneylover

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/internal/tool"
)

func init() {
	core.RegisterModule(&MoneyLover{})
}

var (
	_ core.Configurable = (*MoneyLover)(nil)
	_ core.Provisioner  = (*MoneyLover)(nil)
	_ core.Validator    = (*MoneyLover)(nil)
	_ tool.Dialer       = (*MoneyLover)(nil)
)

// MoneyLover is the tool server module. It registers itself as the
// "tool.dialer" service.
type MoneyLover struct {
	config Config
	logger *slog.Logger
}

// ModuleInfo implements core.Module.
func (m *MoneyLover) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "tool.moneylover",
		New: func() core.Module { return &MoneyLover{} },
	}
}

// Configure implements core.Configurable.
func (m *MoneyLover) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return err
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *MoneyLover) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.logger = ctx.Logger
	ctx.RegisterService("tool.dialer", m)
	return nil
}

// Validate implements core.Validator.
func (m *MoneyLover) Validate() error {
	return m.config.validate()
}

// Connect implements tool.Dialer. It starts the subprocess, performs the
// MCP handshake, and fetches the tool list. Every failure path wraps
// tool.ErrUnavailable so the exchange aborts instead of running without
// tools the system prompt promised.
func (m *MoneyLover) Connect(ctx context.Context) (tool.Session, error) {
	env := []string{
		"EMAIL=" + m.config.Email,
		"PASSWORD=" + m.config.Password,
	}

	c, err := client.NewStdioMCPClient(m.config.Command, env, m.config.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: start subprocess: %v", tool.ErrUnavailable, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "walletclaw",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: initialize: %v", tool.ErrUnavailable, err)
	}

	listed, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: list tools: %v", tool.ErrUnavailable, err)
	}

	descs := make([]tool.Descriptor, 0, len(listed.Tools))
	for _, t := range listed.Tools {
		descs = append(descs, tool.Descriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schemaToMap(t.InputSchema),
		})
	}

	m.logger.Debug("tool server connected", "tools", len(descs))
	return &session{client: c, tools: descs, logger: m.logger}, nil
}
