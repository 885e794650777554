package router

import "sync"

// LaneLock provides per-user serialization. Messages from the same user
// are processed one at a time so their conversation history extends in
// arrival order, while different users proceed concurrently.
//
// Design: a global mutex protects the lane map; each lane has its own
// mutex for intra-user serialization. The global mutex is held only
// briefly to look up or create the per-user mutex. Lanes are reference
// counted and removed as soon as the last holder releases, keeping the
// map bounded by the number of in-flight users.
type LaneLock struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

// lane stores per-user synchronization metadata. refs counts goroutines
// that acquired (or are waiting on) this lane.
type lane struct {
	mu   sync.Mutex
	refs int
}

// NewLaneLock creates a ready-to-use LaneLock.
func NewLaneLock() *LaneLock {
	return &LaneLock{
		lanes: make(map[string]*lane),
	}
}

// Acquire gets or creates the per-user mutex and locks it.
// The caller must call Release with the same user ID when done.
func (l *LaneLock) Acquire(userID string) {
	l.mu.Lock()
	ln, ok := l.lanes[userID]
	if !ok {
		ln = &lane{}
		l.lanes[userID] = ln
	}
	ln.refs++
	l.mu.Unlock()

	// Lock outside the global mutex so other users are not blocked.
	ln.mu.Lock()
}

// Release unlocks the per-user mutex for the given user ID and removes
// the lane when no one else is waiting on it.
func (l *LaneLock) Release(userID string) {
	l.mu.Lock()
	ln, ok := l.lanes[userID]
	if !ok {
		l.mu.Unlock()
		return
	}
	ln.refs--
	if ln.refs == 0 {
		delete(l.lanes, userID)
	}
	l.mu.Unlock()

	ln.mu.Unlock()
}

// Len returns the number of live lanes. Intended for tests and stats.
func (l *LaneLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lanes)
}
