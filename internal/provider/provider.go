// Package provider defines the LLM completion contract and the turn-based
// conversation data model shared by the agent, memory, and provider modules.
package provider

import "context"

// Provider is the interface for communicating with an LLM completion
// service. Concrete implementations live in separate packages
// (e.g. modules/provider/gemini) and typically also implement
// core.Module for lifecycle management.
type Provider interface {
	// Generate sends the conversation contents, optional tool
	// declarations, and a system instruction, and returns the first
	// candidate's content plus reported token usage. Transport and API
	// failures are returned as errors; an empty candidate list is not
	// an error (the response carries an empty model turn instead).
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}
