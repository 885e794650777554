package telegram

import (
	"testing"

	"github.com/flemzord/walletclaw/pkg/message"
)

func textUpdate(text string, entities ...MessageEntity) *Update {
	return &Update{
		UpdateID: 1,
		Message: &Message{
			MessageID: 10,
			Date:      1700000000,
			Text:      text,
			Entities:  entities,
			From: &User{
				ID:        555,
				FirstName: "Ada",
				LastName:  "Lovelace",
				Username:  "ada",
			},
			Chat: Chat{ID: 555, Type: "private"},
		},
	}
}

func TestConvertInbound_PlainText(t *testing.T) {
	t.Parallel()

	msg, err := convertInbound(textUpdate("how much did I spend?"), "wallet_bot", "channel.telegram")
	if err != nil {
		t.Fatalf("convertInbound() error: %v", err)
	}

	if msg.Text != "how much did I spend?" {
		t.Errorf("Text = %q", msg.Text)
	}
	if msg.IsCommand() {
		t.Error("plain text flagged as command")
	}
	if msg.Sender.ID != "555" || msg.Sender.Username != "ada" {
		t.Errorf("Sender = %+v", msg.Sender)
	}
	if msg.Sender.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q", msg.Sender.DisplayName)
	}
	if msg.Chat.Type != message.ChatDM {
		t.Errorf("Chat.Type = %q, want dm", msg.Chat.Type)
	}
	if msg.Channel != "channel.telegram" {
		t.Errorf("Channel = %q", msg.Channel)
	}
}

func TestConvertInbound_Command(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		text        string
		entity      MessageEntity
		wantCommand string
		wantText    string
	}{
		{
			name:        "bare command",
			text:        "/clear",
			entity:      MessageEntity{Type: "bot_command", Offset: 0, Length: 6},
			wantCommand: "clear",
			wantText:    "",
		},
		{
			name:        "command with args",
			text:        "/start now please",
			entity:      MessageEntity{Type: "bot_command", Offset: 0, Length: 6},
			wantCommand: "start",
			wantText:    "now please",
		},
		{
			name:        "command addressed to this bot",
			text:        "/clear@wallet_bot",
			entity:      MessageEntity{Type: "bot_command", Offset: 0, Length: 17},
			wantCommand: "clear",
			wantText:    "",
		},
		{
			name:        "uppercase command is normalized",
			text:        "/Help",
			entity:      MessageEntity{Type: "bot_command", Offset: 0, Length: 5},
			wantCommand: "help",
			wantText:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, err := convertInbound(textUpdate(tt.text, tt.entity), "wallet_bot", "channel.telegram")
			if err != nil {
				t.Fatalf("convertInbound() error: %v", err)
			}
			if msg.Command != tt.wantCommand {
				t.Errorf("Command = %q, want %q", msg.Command, tt.wantCommand)
			}
			if msg.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", msg.Text, tt.wantText)
			}
		})
	}
}

func TestConvertInbound_CommandForOtherBot(t *testing.T) {
	t.Parallel()

	update := textUpdate("/clear@other_bot",
		MessageEntity{Type: "bot_command", Offset: 0, Length: 16})

	msg, err := convertInbound(update, "wallet_bot", "channel.telegram")
	if err != nil {
		t.Fatalf("convertInbound() error: %v", err)
	}
	if msg.IsCommand() {
		t.Errorf("command for another bot should not be a command, got %q", msg.Command)
	}
}

func TestConvertInbound_MidTextCommandIgnored(t *testing.T) {
	t.Parallel()

	update := textUpdate("please /clear this",
		MessageEntity{Type: "bot_command", Offset: 7, Length: 6})

	msg, err := convertInbound(update, "wallet_bot", "channel.telegram")
	if err != nil {
		t.Fatalf("convertInbound() error: %v", err)
	}
	if msg.IsCommand() {
		t.Error("mid-text command should not make the message a command")
	}
	if msg.Text != "please /clear this" {
		t.Errorf("Text = %q", msg.Text)
	}
}

func TestConvertInbound_NoMessage(t *testing.T) {
	t.Parallel()

	if _, err := convertInbound(&Update{UpdateID: 2}, "wallet_bot", "channel.telegram"); err == nil {
		t.Error("update without message should be rejected")
	}

	noText := &Update{UpdateID: 3, Message: &Message{MessageID: 1, Chat: Chat{ID: 1, Type: "private"}}}
	if _, err := convertInbound(noText, "wallet_bot", "channel.telegram"); err == nil {
		t.Error("update without text should be rejected")
	}
}

func TestMapChatType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tgType string
		want   message.ChatType
	}{
		{"private", message.ChatDM},
		{"group", message.ChatGroup},
		{"supergroup", message.ChatGroup},
		{"channel", message.ChatBroadcast},
		{"unknown", message.ChatGroup},
	}
	for _, tt := range tests {
		if got := mapChatType(tt.tgType); got != tt.want {
			t.Errorf("mapChatType(%q) = %q, want %q", tt.tgType, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{Token: "12345:ABC-def_ghi"}
	valid.defaults()
	if err := valid.validate(); err != nil {
		t.Errorf("validate() on valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad token format", func(c *Config) { c.Token = "not-a-token" }},
		{"bad api url", func(c *Config) { c.APIURL = "ftp://example.com" }},
		{"polling timeout too high", func(c *Config) { c.PollingTimeout = 51 }},
		{"message length too high", func(c *Config) { c.MaxMessageLength = 5000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Config{Token: "12345:ABC-def_ghi"}
			c.defaults()
			tt.mutate(&c)
			if err := c.validate(); err == nil {
				t.Error("validate() accepted invalid config")
			}
		})
	}
}
