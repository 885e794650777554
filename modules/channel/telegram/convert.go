package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/flemzord/walletclaw/pkg/message"
)

// convertInbound transforms a Telegram Update into a platform-agnostic
// InboundMessage. Updates without a text message are rejected so the
// poller can skip them.
func convertInbound(update *Update, botUsername, channelName string) (message.InboundMessage, error) {
	msg := update.Message
	if msg == nil {
		return message.InboundMessage{}, fmt.Errorf("telegram: update %d contains no message", update.UpdateID)
	}
	if msg.Text == "" {
		return message.InboundMessage{}, fmt.Errorf("telegram: update %d has no text", update.UpdateID)
	}

	inbound := message.InboundMessage{
		ID:        strconv.Itoa(msg.MessageID),
		Timestamp: time.Unix(int64(msg.Date), 0),
		Channel:   channelName,
		Sender:    convertSender(msg.From),
		Chat:      convertChat(msg.Chat),
	}

	command, rest := extractCommand(msg, botUsername)
	if command != "" {
		inbound.Command = command
		inbound.Text = rest
	} else {
		inbound.Text = msg.Text
	}

	return inbound, nil
}

// convertSender maps a Telegram User to a platform-agnostic Sender.
func convertSender(user *User) message.Sender {
	if user == nil {
		return message.Sender{}
	}
	displayName := user.FirstName
	if user.LastName != "" {
		displayName += " " + user.LastName
	}
	return message.Sender{
		ID:          strconv.FormatInt(user.ID, 10),
		Username:    user.Username,
		DisplayName: displayName,
	}
}

// convertChat maps a Telegram Chat to a platform-agnostic Chat.
func convertChat(chat Chat) message.Chat {
	return message.Chat{
		ID:    strconv.FormatInt(chat.ID, 10),
		Type:  mapChatType(chat.Type),
		Title: chat.Title,
	}
}

// mapChatType converts Telegram chat type strings to message.ChatType.
func mapChatType(tgType string) message.ChatType {
	switch tgType {
	case "private":
		return message.ChatDM
	case "group", "supergroup":
		return message.ChatGroup
	case "channel":
		return message.ChatBroadcast
	default:
		return message.ChatGroup
	}
}

// extractCommand returns the command name (without the leading slash) and
// the remaining text if the message starts with a bot_command entity at
// offset zero. A "@botname" suffix addressed to another bot makes the
// message a plain text message, not a command.
func extractCommand(msg *Message, botUsername string) (command, rest string) {
	for _, ent := range msg.Entities {
		if ent.Type != "bot_command" || ent.Offset != 0 {
			continue
		}

		raw := extractEntityText(msg.Text, ent.Offset, ent.Length)
		raw = strings.TrimPrefix(raw, "/")

		if name, target, ok := strings.Cut(raw, "@"); ok {
			if !strings.EqualFold(target, botUsername) {
				return "", ""
			}
			raw = name
		}

		rest = strings.TrimSpace(extractEntityText(msg.Text, ent.Length, utf16Len(msg.Text)-ent.Length))
		return strings.ToLower(raw), rest
	}
	return "", ""
}

// extractEntityText safely extracts a substring using UTF-16 offsets,
// which is what Telegram uses for entity offsets and lengths.
func extractEntityText(text string, offset, length int) string {
	encoded := utf16.Encode([]rune(text))
	if offset >= len(encoded) || length <= 0 {
		return ""
	}
	end := offset + length
	if end > len(encoded) {
		end = len(encoded)
	}
	return string(utf16.Decode(encoded[offset:end]))
}

func utf16Len(text string) int {
	return len(utf16.Encode([]rune(text)))
}
