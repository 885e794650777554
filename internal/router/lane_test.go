package router

import (
	"sync"
	"testing"
)

func TestLaneLock_SerializesSameUser(t *testing.T) {
	t.Parallel()

	l := NewLaneLock()

	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Acquire("u1")
			defer l.Release("u1")

			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			mu.Lock()
			inFlight--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Errorf("max concurrent holders for one user = %d, want 1", maxInFlight)
	}
}

func TestLaneLock_DifferentUsersProceedConcurrently(t *testing.T) {
	t.Parallel()

	l := NewLaneLock()

	// u1's lane is held; u2 must still acquire without blocking.
	l.Acquire("u1")
	defer l.Release("u1")

	done := make(chan struct{})
	go func() {
		l.Acquire("u2")
		l.Release("u2")
		close(done)
	}()

	<-done
}

func TestLaneLock_MapStaysBounded(t *testing.T) {
	t.Parallel()

	l := NewLaneLock()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			l.Acquire(id)
			l.Release(id)
		}(i)
	}
	wg.Wait()

	if got := l.Len(); got != 0 {
		t.Errorf("lanes remaining after all releases = %d, want 0", got)
	}
}

func TestLaneLock_ReleaseUnknownUserIsNoop(t *testing.T) {
	t.Parallel()

	l := NewLaneLock()
	l.Release("ghost")
}
