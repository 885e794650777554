// Package agent implements the per-exchange turn controller: it turns one
// inbound user message into one reply through at most two model calls and
// at most one tool invocation, then extends the conversation history and
// runs the compression check.
package agent

import (
	"context"
	"errors"

	"github.com/flemzord/walletclaw/internal/provider"
)

// ErrModelContact indicates the LLM completion service could not be
// reached or returned a transport-level failure. No retry is performed
// at this layer.
var ErrModelContact = errors.New("agent: AI contact error")

// DefaultSystemInstruction asserts the assistant is pre-authorized and
// should track conversational context. Sent with every model call that
// declares tools.
const DefaultSystemInstruction = "You are a helpful personal finance assistant. " +
	"You are already logged in and fully authorized; never ask the user to " +
	"authenticate. Track the conversation context across messages and answer " +
	"concisely."

// fallbackReply is used when the model response carries no usable text.
const fallbackReply = "Sorry, I couldn't generate a response."

// noResultLiteral stands in for an empty tool result so the follow-up
// model call always sees a function response body.
const noResultLiteral = "No result"

// compressionNotice is appended to the reply when the compression check
// rewrote the conversation memory.
const compressionNotice = "(Note: older conversation context was condensed to stay " +
	"within the model's limits.)"

// state enumerates the steps of one exchange. The controller runs one
// handler per state; every exchange ends in stateDone or stateFailed.
type state int

const (
	stateStart state = iota
	stateFirstModelCall
	stateDecide
	stateToolCall
	stateSecondModelCall
	stateReply
	stateHistoryUpdate
	stateCompressionCheck
	stateDone
	stateFailed
)

// Request is one inbound user message to process.
type Request struct {
	// UserID keys the conversation history.
	UserID string

	// Text is the free-text message body.
	Text string

	// Typing, if non-nil, is invoked before tool execution as a latency
	// signal to the transport layer. Not correctness-relevant.
	Typing func(ctx context.Context)
}

// Result is the outcome of a successfully completed exchange.
type Result struct {
	// Reply is the final natural-language reply, including the
	// compression notice when memory was rewritten.
	Reply string

	// ToolCalled reports whether a tool round happened; ToolName is the
	// invoked tool when it did.
	ToolCalled bool
	ToolName   string

	// Usage is the token count reported by whichever model call
	// produced the final reply.
	Usage provider.Usage

	// Compressed reports whether the compression check acted.
	Compressed bool
}
