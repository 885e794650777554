package memory_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/flemzord/walletclaw/internal/memory"
	"github.com/flemzord/walletclaw/internal/provider"
)

// Compile-time interface guard.
var _ memory.Store = (*memory.InMemoryStore)(nil)

func TestInMemoryStore_GetOrCreate_Empty(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()

	history, err := store.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("GetOrCreate: got %d turns, want 0", len(history))
	}

	// Creation is idempotent.
	again, err := store.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate (second): unexpected error: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("GetOrCreate (second): got %d turns, want 0", len(again))
	}
}

func TestInMemoryStore_AppendPreservesOrder(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()

	if err := store.Append("u1",
		provider.UserText("first"),
		provider.ModelText("second"),
	); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if err := store.Append("u1", provider.UserText("third")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	history, err := store.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(history) != len(want) {
		t.Fatalf("history length = %d, want %d", len(history), len(want))
	}
	for i, text := range want {
		if history[i].Text() != text {
			t.Errorf("history[%d].Text() = %q, want %q", i, history[i].Text(), text)
		}
	}
}

func TestInMemoryStore_GetOrCreate_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()
	if err := store.Append("u1", provider.UserText("original")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	history, err := store.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}
	history[0] = provider.UserText("mutated")

	again, err := store.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate (second): unexpected error: %v", err)
	}
	if again[0].Text() != "original" {
		t.Fatalf("store history mutated through returned slice: got %q", again[0].Text())
	}
}

func TestInMemoryStore_Reset(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()
	if err := store.Append("u1", provider.UserText("hello"), provider.ModelText("hi")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	if err := store.Reset("u1"); err != nil {
		t.Fatalf("Reset: unexpected error: %v", err)
	}

	n, err := store.Len("u1")
	if err != nil {
		t.Fatalf("Len: unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("Len after Reset = %d, want 0", n)
	}
}

func TestInMemoryStore_ReplaceWithSummary(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()
	for i := 0; i < 10; i++ {
		if err := store.Append("u1", provider.UserText(fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Append(%d): unexpected error: %v", i, err)
		}
	}

	if err := store.ReplaceWithSummary("u1", "spent 40 EUR on groceries"); err != nil {
		t.Fatalf("ReplaceWithSummary: unexpected error: %v", err)
	}

	history, err := store.GetOrCreate("u1")
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length after summary = %d, want 2", len(history))
	}
	if history[0].Role != provider.RoleUser {
		t.Errorf("history[0].Role = %q, want %q", history[0].Role, provider.RoleUser)
	}
	if history[1].Role != provider.RoleModel {
		t.Errorf("history[1].Role = %q, want %q", history[1].Role, provider.RoleModel)
	}
	if !strings.HasPrefix(history[0].Text(), memory.SummaryPreamble) {
		t.Errorf("summary turn missing preamble: %q", history[0].Text())
	}
	if !strings.Contains(history[0].Text(), "spent 40 EUR on groceries") {
		t.Errorf("summary turn missing summary body: %q", history[0].Text())
	}
	if history[1].Text() == "" {
		t.Errorf("acknowledgment turn is empty")
	}
}

func TestInMemoryStore_CrossUserIsolation(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()
	if err := store.Append("u1", provider.UserText("u1 message")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if err := store.Append("u2", provider.UserText("u2 message")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	if err := store.Reset("u1"); err != nil {
		t.Fatalf("Reset: unexpected error: %v", err)
	}

	n, err := store.Len("u2")
	if err != nil {
		t.Fatalf("Len: unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("u2 history affected by u1 reset: Len = %d, want 1", n)
	}
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := memory.NewInMemoryStore()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(goroutine int) {
			defer wg.Done()
			userID := fmt.Sprintf("u%d", goroutine%3)
			for i := 0; i < 100; i++ {
				if err := store.Append(userID, provider.UserText(fmt.Sprintf("g%d-%d", goroutine, i))); err != nil {
					t.Errorf("Append: unexpected error: %v", err)
				}
				if _, err := store.GetOrCreate(userID); err != nil {
					t.Errorf("GetOrCreate: unexpected error: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, u := range []string{"u0", "u1", "u2"} {
		n, err := store.Len(u)
		if err != nil {
			t.Fatalf("Len(%s): unexpected error: %v", u, err)
		}
		total += n
	}
	if total != 1000 {
		t.Fatalf("total turns = %d, want 1000", total)
	}
}
