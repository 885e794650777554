// Package memory owns per-user conversation history: creation, append,
// reset, summary replacement, and the token-budget compression policies
// that keep histories inside the model's context window.
package memory

import (
	"time"

	"github.com/flemzord/walletclaw/internal/provider"
)

// SummaryPreamble marks the seed user turn produced by a compression
// event, so the model can tell condensed context from a live message.
const SummaryPreamble = "Summary of our conversation so far:"

// summaryAck is the fixed model turn following the summary seed. The
// two-turn shape keeps roles strictly alternating for the next real
// user message.
const summaryAck = "Got it. I'll pick up from that summary."

// Store manages per-user ordered conversation histories. Histories are
// owned exclusively by the store: reads return copies, writes are atomic
// per key, and different keys never interact.
// Implementations must be safe for concurrent use.
type Store interface {
	// GetOrCreate returns the user's history, registering an empty one
	// on first use. Creation is idempotent and has no side effects
	// beyond registering the key.
	GetOrCreate(userID string) ([]provider.Turn, error)

	// Append adds turns to the user's history in order, never
	// reordering or deduplicating.
	Append(userID string, turns ...provider.Turn) error

	// Reset replaces the user's history with an empty sequence.
	Reset(userID string) error

	// ReplaceWithSummary atomically replaces the history with exactly
	// two turns: a user turn carrying the summary preamble plus the
	// summary text, and a model turn acknowledging it.
	ReplaceWithSummary(userID, summary string) error

	// Len returns the number of turns stored for the user.
	Len(userID string) (int, error)

	// Count returns the number of tracked conversations.
	Count() int

	// PurgeIdle removes histories not touched within maxIdle and
	// returns how many were removed.
	PurgeIdle(maxIdle time.Duration) int
}
