package channel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/pkg/message"
)

// fakeChannel records outbound messages.
type fakeChannel struct {
	sent []message.OutboundMessage
}

func (f *fakeChannel) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{ID: "channel.fake", New: func() core.Module { return &fakeChannel{} }}
}

func (f *fakeChannel) Send(_ context.Context, msg message.OutboundMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeChannel) SetInbox(func(message.InboundMessage) error) {}

func TestDispatcher_RegisterAndSend(t *testing.T) {
	t.Parallel()

	d := channel.NewDispatcher()
	ch := &fakeChannel{}
	if err := d.Register("channel.fake", ch); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}

	msg := message.OutboundMessage{Channel: "channel.fake", Text: "hi"}
	if err := d.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: unexpected error: %v", err)
	}
	if len(ch.sent) != 1 || ch.sent[0].Text != "hi" {
		t.Errorf("channel received %v, want the dispatched message", ch.sent)
	}
}

func TestDispatcher_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	d := channel.NewDispatcher()
	if err := d.Register("channel.fake", &fakeChannel{}); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	err := d.Register("channel.fake", &fakeChannel{})
	if !errors.Is(err, channel.ErrDuplicateChannel) {
		t.Errorf("Register error = %v, want ErrDuplicateChannel", err)
	}
}

func TestDispatcher_ChannelsSorted(t *testing.T) {
	t.Parallel()

	d := channel.NewDispatcher()
	for _, name := range []string{"channel.zulip", "channel.fake", "channel.matrix"} {
		if err := d.Register(name, &fakeChannel{}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	got := d.Channels()
	want := []string{"channel.fake", "channel.matrix", "channel.zulip"}
	if len(got) != len(want) {
		t.Fatalf("Channels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Channels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDispatcher_UnknownChannel(t *testing.T) {
	t.Parallel()

	d := channel.NewDispatcher()
	err := d.Send(context.Background(), message.OutboundMessage{Channel: "channel.ghost"})
	if !errors.Is(err, channel.ErrNoChannel) {
		t.Errorf("Send error = %v, want ErrNoChannel", err)
	}
}
