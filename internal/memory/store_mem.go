package memory

import (
	"sync"
	"time"

	"github.com/flemzord/walletclaw/internal/provider"
)

// conversation holds the history for a single user.
type conversation struct {
	turns   []provider.Turn
	touched time.Time
}

// InMemoryStore is a thread-safe, in-memory Store implementation.
// Histories live for the process lifetime; a restart loses all state.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]*conversation
	now   func() time.Time
}

// NewInMemoryStore creates a new empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[string]*conversation),
		now:   time.Now,
	}
}

// Compile-time interface check.
var _ Store = (*InMemoryStore)(nil)

func (s *InMemoryStore) getOrCreate(userID string) *conversation {
	c, ok := s.users[userID]
	if !ok {
		c = &conversation{}
		s.users[userID] = c
	}
	c.touched = s.now()
	return c
}

// GetOrCreate returns a copy of the user's history, creating an empty
// one on first use.
func (s *InMemoryStore) GetOrCreate(userID string) ([]provider.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreate(userID)
	out := make([]provider.Turn, len(c.turns))
	copy(out, c.turns)
	return out, nil
}

// Append adds turns to the user's history in order.
func (s *InMemoryStore) Append(userID string, turns ...provider.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreate(userID)
	c.turns = append(c.turns, turns...)
	return nil
}

// Reset replaces the user's history with an empty sequence.
func (s *InMemoryStore) Reset(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreate(userID)
	c.turns = nil
	return nil
}

// ReplaceWithSummary collapses the history to the two-turn summary seed.
func (s *InMemoryStore) ReplaceWithSummary(userID, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreate(userID)
	c.turns = []provider.Turn{
		provider.UserText(SummaryPreamble + "\n\n" + summary),
		provider.ModelText(summaryAck),
	}
	return nil
}

// Len returns the number of turns stored for the user.
func (s *InMemoryStore) Len(userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.users[userID]
	if !ok {
		return 0, nil
	}
	return len(c.turns), nil
}

// Count returns the number of tracked conversations.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// PurgeIdle removes histories whose last activity is older than maxIdle.
func (s *InMemoryStore) PurgeIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, c := range s.users {
		if c.touched.Before(cutoff) {
			delete(s.users, id)
			removed++
		}
	}
	return removed
}
