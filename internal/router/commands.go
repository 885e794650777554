package router

import (
	"context"
	"errors"

	"github.com/flemzord/walletclaw/internal/agent"
	"github.com/flemzord/walletclaw/internal/tool"
	"github.com/flemzord/walletclaw/pkg/message"
)

const (
	welcomeText = "Hi! I'm your personal finance assistant. Ask me about your " +
		"transactions, balances, or wallets, and I'll look them up for you.\n\n" +
		"Commands:\n" +
		"/clear - forget our conversation so far\n" +
		"/help - show this message"

	clearedText = "Done. I've forgotten our conversation so far."

	unknownCommandText = "I don't know that command. Try /help."
)

// handleCommand processes a bot command without touching the model.
// Commands are cheap and synchronous; they run inside the user's lane so
// a /clear cannot race an in-flight exchange.
func (r *Router) handleCommand(ctx context.Context, env envelope) {
	var reply string

	switch env.Message.Command {
	case "start", "help":
		reply = welcomeText
	case "clear":
		if err := r.config.Store.Reset(env.UserID); err != nil {
			r.logger.Error("router: history reset failed", "user", env.UserID, "error", err)
			reply = "Sorry, I couldn't clear the conversation. Please try again."
			break
		}
		reply = clearedText
	default:
		reply = unknownCommandText
	}

	r.send(ctx, env.Message, reply)
}

// send delivers a reply to the message's originating chat, logging
// delivery failures.
func (r *Router) send(ctx context.Context, in message.InboundMessage, text string) {
	out := message.Reply(in, text)
	if err := r.config.Sender.Send(ctx, out); err != nil {
		sendFailuresTotal.Inc()
		r.logger.Error("router: reply delivery failed",
			"channel", in.Channel,
			"chat_id", in.Chat.ID,
			"error", err,
		)
	}
}

// errorText maps an exchange failure to the text sent back to the user.
// The conversation history was left untouched, so the user can simply
// retry the same message.
func errorText(err error) string {
	switch {
	case errors.Is(err, tool.ErrUnavailable):
		return "The wallet tools are unavailable right now. Please try again in a moment."
	case errors.Is(err, agent.ErrModelContact):
		return "I couldn't reach the AI service. Please try again."
	default:
		return "An error occurred while processing your message. Please try again."
	}
}
