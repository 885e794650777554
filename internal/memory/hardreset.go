package memory

import (
	"context"
	"log/slog"
)

// HardReset discards the entire history when usage crosses the limit.
// Cheaper than Summarizer (no auxiliary model call) at the cost of all
// conversational context.
type HardReset struct {
	store  Store
	limit  int
	logger *slog.Logger
}

// NewHardReset creates a HardReset compressor. A limit <= 0 falls back
// to DefaultTokenLimit.
func NewHardReset(store Store, limit int, logger *slog.Logger) *HardReset {
	if limit <= 0 {
		limit = DefaultTokenLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HardReset{store: store, limit: limit, logger: logger}
}

// Compile-time interface check.
var _ Compressor = (*HardReset)(nil)

// Compress resets the user's history when usage crosses the limit.
func (h *HardReset) Compress(_ context.Context, userID string, usage int) (bool, error) {
	if !overBudget(usage, h.limit) {
		return false, nil
	}
	if err := h.store.Reset(userID); err != nil {
		return false, err
	}
	h.logger.Info("conversation reset",
		"user", userID,
		"usage", usage,
		"limit", h.limit,
	)
	return true, nil
}
