// Package message defines the platform-agnostic data contract between
// channels and the router.
package message

// ChatType indicates the kind of conversation.
type ChatType string

const (
	// ChatDM is a direct (one-to-one) conversation.
	ChatDM ChatType = "dm"
	// ChatGroup is a multi-participant group conversation.
	ChatGroup ChatType = "group"
	// ChatBroadcast is a one-to-many broadcast channel.
	ChatBroadcast ChatType = "broadcast"
)

// Sender identifies the author of an inbound message.
type Sender struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID    string   `json:"id"`
	Type  ChatType `json:"type"`
	Title string   `json:"title,omitempty"`
}
