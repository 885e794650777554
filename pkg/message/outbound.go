package message

// OutboundMessage represents a message to be sent through a channel.
type OutboundMessage struct {
	Channel   string `json:"channel"`
	Chat      Chat   `json:"chat"`
	ReplyToID string `json:"reply_to_id,omitempty"`
	Text      string `json:"text"`
}

// Reply builds an outbound message answering the given inbound message
// on the same channel and chat.
func Reply(in InboundMessage, text string) OutboundMessage {
	return OutboundMessage{
		Channel: in.Channel,
		Chat:    in.Chat,
		Text:    text,
	}
}
