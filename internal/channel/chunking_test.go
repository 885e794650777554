package channel_test

import (
	"strings"
	"testing"

	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/pkg/message"
)

func TestSplitMessage_FitsUnchanged(t *testing.T) {
	t.Parallel()

	msg := message.OutboundMessage{Text: "short", ReplyToID: "7"}
	out := channel.SplitMessage(msg, 100)
	if len(out) != 1 {
		t.Fatalf("chunks = %d, want 1", len(out))
	}
	if out[0].Text != "short" || out[0].ReplyToID != "7" {
		t.Errorf("chunk = %+v, want the original message", out[0])
	}
}

func TestSplitMessage_SplitsAtLineBoundaries(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("aaaa\n", 10) // 50 bytes
	msg := message.OutboundMessage{Text: strings.TrimRight(text, "\n"), ReplyToID: "7"}
	out := channel.SplitMessage(msg, 20)

	if len(out) < 2 {
		t.Fatalf("chunks = %d, want several", len(out))
	}
	for i, c := range out {
		if len(c.Text) > 20 {
			t.Errorf("chunk %d length = %d, exceeds limit", i, len(c.Text))
		}
		if strings.Contains(c.Text, "aaaaa") {
			t.Errorf("chunk %d split mid-line: %q", i, c.Text)
		}
	}

	// Only the first chunk keeps the reply reference.
	if out[0].ReplyToID != "7" {
		t.Errorf("first chunk ReplyToID = %q, want 7", out[0].ReplyToID)
	}
	for i, c := range out[1:] {
		if c.ReplyToID != "" {
			t.Errorf("chunk %d carries ReplyToID %q, want empty", i+1, c.ReplyToID)
		}
	}
}

func TestSplitMessage_ForceSplitsLongLine(t *testing.T) {
	t.Parallel()

	msg := message.OutboundMessage{Text: strings.Repeat("x", 45)}
	out := channel.SplitMessage(msg, 20)

	var total int
	for i, c := range out {
		if len(c.Text) > 20 {
			t.Errorf("chunk %d length = %d, exceeds limit", i, len(c.Text))
		}
		total += len(c.Text)
	}
	if total != 45 {
		t.Errorf("total bytes across chunks = %d, want 45", total)
	}
}

func TestSplitMessage_DisabledLimit(t *testing.T) {
	t.Parallel()

	msg := message.OutboundMessage{Text: strings.Repeat("x", 500)}
	out := channel.SplitMessage(msg, 0)
	if len(out) != 1 {
		t.Fatalf("chunks = %d, want 1 when splitting is disabled", len(out))
	}
}
