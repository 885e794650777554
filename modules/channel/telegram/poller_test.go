package telegram

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/pkg/message"
)

func TestPoller_DeliversAllowedUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req GetUpdatesRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("unmarshal getUpdates request: %v", err)
		}

		var updates []Update
		if req.Offset == 0 {
			updates = []Update{
				*textUpdate("hello"),
				{
					UpdateID: 2,
					Message: &Message{
						MessageID: 11,
						Date:      1700000001,
						Text:      "intruder",
						From:      &User{ID: 999, FirstName: "Eve"},
						Chat:      Chat{ID: 999, Type: "private"},
					},
				},
			}
		}
		writeJSON(t, w, APIResponse[[]Update]{OK: true, Result: updates})
	}))
	defer srv.Close()

	received := make(chan message.InboundMessage, 4)
	inbox := func(msg message.InboundMessage) error {
		received <- msg
		return nil
	}

	p := NewPoller(
		NewClient("TOKEN", srv.URL),
		inbox,
		channel.NewAllowList([]string{"555"}),
		discardLogger(),
		"wallet_bot", "channel.telegram",
		Config{},
	)
	p.Start()
	defer p.Stop()

	select {
	case msg := <-received:
		if msg.Sender.ID != "555" {
			t.Errorf("Sender.ID = %q, want 555", msg.Sender.ID)
		}
		if msg.Text != "hello" {
			t.Errorf("Text = %q, want hello", msg.Text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for inbox delivery")
	}

	// The second update's sender is not on the allow list.
	select {
	case msg := <-received:
		t.Errorf("denied sender delivered to inbox: %+v", msg.Sender)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, APIResponse[[]Update]{OK: true, Result: nil})
	}))
	defer srv.Close()

	p := NewPoller(
		NewClient("TOKEN", srv.URL),
		func(message.InboundMessage) error { return nil },
		channel.NewAllowList(nil),
		discardLogger(),
		"wallet_bot", "channel.telegram",
		Config{},
	)
	p.Start()
	p.Stop()
	p.Stop()
}
