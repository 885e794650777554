// Package router dispatches inbound messages to the agent, serializing
// exchanges per user and routing replies back through the right channel.
package router

import "errors"

// Sentinel errors for router operations.
var (
	// ErrInboxFull indicates the router's message inbox is at capacity
	// and the incoming message was dropped. Callers should back off or
	// alert the operator.
	ErrInboxFull = errors.New("router: inbox full, message dropped")

	// ErrRouterStopped indicates the router has been shut down and is
	// no longer accepting messages.
	ErrRouterStopped = errors.New("router: stopped")

	// ErrNoExchanger indicates no exchange handler has been configured.
	ErrNoExchanger = errors.New("router: no exchanger configured")

	// ErrNoResponseSender indicates no response sender has been configured.
	// The router cannot deliver outbound messages without one.
	ErrNoResponseSender = errors.New("router: no response sender configured")

	// ErrNoStore indicates no conversation store has been configured.
	ErrNoStore = errors.New("router: no conversation store configured")
)
