package memory

import "context"

// DefaultTokenLimit is the token usage threshold that triggers
// compression when no limit is configured.
const DefaultTokenLimit = 50000

// Compressor decides after each exchange whether the user's accumulated
// context has crossed the token budget, and if so collapses the history.
// The usage argument is the token count reported by whichever model call
// produced the final reply; zero (usage metadata absent) never triggers.
//
// Two interchangeable policies exist: Summarizer condenses the history
// into a two-turn seed via an auxiliary model call, HardReset discards
// it. Both trigger on usage >= limit and report whether they acted.
type Compressor interface {
	Compress(ctx context.Context, userID string, usage int) (bool, error)
}

// overBudget is the shared threshold check. Usage of zero means the API
// reported no usage metadata and must never trigger.
func overBudget(usage, limit int) bool {
	return usage > 0 && usage >= limit
}
