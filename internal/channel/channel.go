// Package channel defines the bridge between messaging platforms and the
// router. It provides the Channel interface, typing indicators, message
// chunking, and allow-list filtering.
package channel

import (
	"context"
	"time"

	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/pkg/message"
)

// Channel is the bridge between a messaging platform and the router.
//
// A channel receives messages from its platform, checks the allow-list,
// and pushes them to the router via the inbox callback. It also receives
// outbound messages from the router via Send().
type Channel interface {
	core.Module

	// Send delivers an outbound message to the platform.
	Send(ctx context.Context, msg message.OutboundMessage) error

	// SetInbox gives the channel a function to push inbound messages to
	// the router. The router calls this during wiring, before Start().
	SetInbox(fn func(msg message.InboundMessage) error)
}

// TypingChannel is implemented by channels that can show typing indicators
// to the user while the agent is processing.
type TypingChannel interface {
	Channel

	// SendTyping sends a single typing indicator to the platform.
	SendTyping(ctx context.Context, chat message.Chat) error
}

// defaultTypingInterval keeps the indicator alive on platforms where a
// single action expires after a few seconds.
const defaultTypingInterval = 4 * time.Second

// StartTypingLoop launches a goroutine that sends typing indicators at the
// given interval until the context is cancelled. An interval <= 0 uses the
// default.
func StartTypingLoop(ctx context.Context, ch TypingChannel, chat message.Chat, interval time.Duration) {
	if interval <= 0 {
		interval = defaultTypingInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Send an initial typing indicator immediately.
		_ = ch.SendTyping(ctx, chat)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = ch.SendTyping(ctx, chat)
			}
		}
	}()
}
