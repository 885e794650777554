package memory

import (
	"context"
	"log/slog"

	"github.com/flemzord/walletclaw/internal/provider"
)

// summarizeInstruction is the fixed prompt appended to the full history
// when condensing it. It enumerates what a finance-assistant summary
// must keep for the conversation to continue coherently.
const summarizeInstruction = "Summarise our conversation so far so it can replace " +
	"the full history. Keep: every transaction discussed (amounts, wallets, " +
	"categories, dates), current balances and wallet state, decisions and open " +
	"action items, and any context needed to continue the conversation naturally. " +
	"Reply with the summary only."

// summaryFallback is used as the summary body when the auxiliary model
// call fails. Continuity is preserved in degraded form rather than
// discarding the conversation.
const summaryFallback = "The earlier conversation could not be summarised. " +
	"Some context may be missing."

// Summarizer compresses over-budget histories by asking the model for a
// condensed summary and replacing the history with a two-turn seed.
type Summarizer struct {
	store    Store
	provider provider.Provider
	limit    int
	logger   *slog.Logger
}

// NewSummarizer creates a Summarizer. A limit <= 0 falls back to
// DefaultTokenLimit.
func NewSummarizer(store Store, p provider.Provider, limit int, logger *slog.Logger) *Summarizer {
	if limit <= 0 {
		limit = DefaultTokenLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{store: store, provider: p, limit: limit, logger: logger}
}

// Compile-time interface check.
var _ Compressor = (*Summarizer)(nil)

// Compress summarises the user's history when usage crosses the limit.
// A failed summarisation model call falls back to a fixed summary body;
// it never hard-resets in that branch.
func (s *Summarizer) Compress(ctx context.Context, userID string, usage int) (bool, error) {
	if !overBudget(usage, s.limit) {
		return false, nil
	}

	history, err := s.store.GetOrCreate(userID)
	if err != nil {
		return false, err
	}

	contents := append(history, provider.UserText(summarizeInstruction))
	summary := summaryFallback

	// No tools attached: the summarisation call must not trigger
	// another tool round.
	resp, err := s.provider.Generate(ctx, provider.GenerateRequest{Contents: contents})
	if err != nil {
		s.logger.Warn("summarisation call failed, using fallback summary",
			"user", userID,
			"error", err,
		)
	} else if text := resp.Content.Text(); text != "" {
		summary = text
	}

	if err := s.store.ReplaceWithSummary(userID, summary); err != nil {
		return false, err
	}

	s.logger.Info("conversation compressed",
		"user", userID,
		"usage", usage,
		"limit", s.limit,
	)
	return true, nil
}
