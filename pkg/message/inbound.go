package message

import "time"

// InboundMessage represents a message received from a channel.
// Commands (e.g. "/clear") arrive with Command set and Text holding
// any trailing arguments; plain messages have Command empty.
type InboundMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Channel   string    `json:"channel"`
	Sender    Sender    `json:"sender"`
	Chat      Chat      `json:"chat"`
	Text      string    `json:"text"`
	Command   string    `json:"command,omitempty"`
}

// IsCommand reports whether the message is a bot command.
func (m *InboundMessage) IsCommand() bool {
	return m.Command != ""
}
