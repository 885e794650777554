package moneylover

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flemzord/walletclaw/internal/tool"
)

// session is one live connection to the tool subprocess.
type session struct {
	client *client.Client
	tools  []tool.Descriptor
	logger *slog.Logger
}

var _ tool.Session = (*session)(nil)

// Tools implements tool.Session.
func (s *session) Tools() []tool.Descriptor {
	return s.tools
}

// Call implements tool.Session. The result is the concatenation of all
// text content blocks; a result with no text blocks is an empty string.
func (s *session) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}

	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	out := strings.Join(parts, "\n")

	if result.IsError {
		return "", fmt.Errorf("tool %s reported an error: %s", name, out)
	}
	return out, nil
}

// Close implements tool.Session. It terminates the subprocess.
func (s *session) Close() error {
	return s.client.Close()
}

// schemaToMap flattens the typed input schema into the generic map the
// declaration pipeline expects, via a JSON round trip.
func schemaToMap(schema mcp.ToolInputSchema) map[string]any {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
