package channel

import (
	"strings"

	"github.com/flemzord/walletclaw/pkg/message"
)

// SplitMessage splits an outbound message into multiple messages that each
// respect maxLen bytes of text. Splitting prefers line boundaries; a single
// line longer than maxLen is force-split. A maxLen <= 0 disables splitting.
// Only the first chunk keeps the reply reference.
func SplitMessage(msg message.OutboundMessage, maxLen int) []message.OutboundMessage {
	if maxLen <= 0 || len(msg.Text) <= maxLen {
		return []message.OutboundMessage{msg}
	}

	chunks := splitText(msg.Text, maxLen)

	result := make([]message.OutboundMessage, 0, len(chunks))
	for i, chunk := range chunks {
		out := message.OutboundMessage{
			Channel: msg.Channel,
			Chat:    msg.Chat,
			Text:    chunk,
		}
		if i == 0 {
			out.ReplyToID = msg.ReplyToID
		}
		result = append(result, out)
	}
	return result
}

// splitText breaks text into chunks of at most maxLen bytes, preferring
// line boundaries.
func splitText(text string, maxLen int) []string {
	lines := strings.Split(text, "\n")

	var chunks []string
	var current strings.Builder

	for _, line := range lines {
		lineWithNewline := line + "\n"

		if current.Len()+len(lineWithNewline) > maxLen {
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
				current.Reset()
			}

			// A single line exceeding maxLen is force-split.
			if len(lineWithNewline) > maxLen {
				chunks = append(chunks, forceSplit(line, maxLen)...)
				continue
			}
		}

		current.WriteString(lineWithNewline)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
	}

	return chunks
}

// forceSplit breaks a single long line into chunks of at most maxLen bytes.
func forceSplit(line string, maxLen int) []string {
	var parts []string
	for len(line) > maxLen {
		parts = append(parts, line[:maxLen])
		line = line[maxLen:]
	}
	if len(line) > 0 {
		parts = append(parts, line)
	}
	return parts
}
