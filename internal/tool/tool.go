// Package tool defines the contract between the agent and the external
// tool-execution collaborator. Tools are served by an MCP subprocess whose
// lifetime is scoped to a single exchange: acquired via a Dialer, used for
// at most one call, and released when the exchange ends.
package tool

import "context"

// Descriptor describes one tool as reported by the tool server: its name,
// a human description, and the raw parameter schema. The descriptor list
// is fetched live at the start of each exchange and never cached across
// exchanges: the tool subprocess is started fresh each time and its tool
// list can change between processes.
type Descriptor struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// Session is one live connection to the tool server.
type Session interface {
	// Tools returns the descriptors of all tools the server exposes.
	Tools() []Descriptor

	// Call invokes the named tool and returns its textual result.
	// An empty result is returned as an empty string, not an error.
	Call(ctx context.Context, name string, args map[string]any) (string, error)

	// Close releases the session and terminates the subprocess.
	Close() error
}

// Dialer establishes tool sessions. Connect starts the tool server,
// performs the protocol handshake, and fetches the tool list; failures
// wrap ErrUnavailable so callers can fail the exchange fast rather than
// silently proceeding tool-less.
type Dialer interface {
	Connect(ctx context.Context) (Session, error)
}
