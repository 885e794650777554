package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/pkg/message"
)

func init() {
	core.RegisterModule(&Telegram{})
}

// Compile-time interface guards.
var (
	_ channel.Channel       = (*Telegram)(nil)
	_ channel.TypingChannel = (*Telegram)(nil)
	_ core.Configurable     = (*Telegram)(nil)
	_ core.Provisioner      = (*Telegram)(nil)
	_ core.Validator        = (*Telegram)(nil)
	_ core.Starter          = (*Telegram)(nil)
	_ core.Stopper          = (*Telegram)(nil)
)

// Telegram implements the Telegram Bot API channel using long polling.
type Telegram struct {
	config    Config
	client    *Client
	logger    *slog.Logger
	allowList *channel.AllowList
	inbox     func(message.InboundMessage) error
	botUser   *User
	poller    *Poller
}

// ModuleInfo implements core.Module.
func (t *Telegram) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "channel.telegram",
		New: func() core.Module { return &Telegram{} },
	}
}

// Configure implements core.Configurable.
func (t *Telegram) Configure(node *yaml.Node) error {
	if err := node.Decode(&t.config); err != nil {
		return fmt.Errorf("telegram: decode config: %w", err)
	}
	t.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (t *Telegram) Provision(ctx *core.AppContext) error {
	t.config.defaults()
	t.logger = ctx.Logger
	t.client = NewClient(t.config.Token, t.config.APIURL)
	t.allowList = channel.NewAllowList(t.config.AllowUsers)
	return nil
}

// Validate implements core.Validator.
func (t *Telegram) Validate() error {
	if t.config.Token == "" {
		return errors.New("telegram: token is required")
	}
	return t.config.validate()
}

// Start implements core.Starter. It validates the bot token, then starts
// the polling loop.
func (t *Telegram) Start() error {
	if t.inbox == nil {
		return errors.New("telegram: inbox not set, call SetInbox before Start")
	}

	user, err := t.client.GetMe(context.Background())
	if err != nil {
		return fmt.Errorf("telegram: getMe failed (check token): %w", err)
	}
	t.botUser = user
	t.logger.Info("telegram bot authenticated",
		"id", user.ID,
		"username", user.Username,
	)

	t.poller = NewPoller(
		t.client, t.inbox, t.allowList, t.logger,
		user.Username, string(t.ModuleInfo().ID), t.config,
	)
	t.poller.Start()
	t.logger.Info("telegram polling started",
		"timeout", t.config.PollingTimeout,
	)
	return nil
}

// Stop implements core.Stopper.
func (t *Telegram) Stop(_ context.Context) error {
	t.logger.Info("telegram channel stopping")
	if t.poller != nil {
		t.poller.Stop()
	}
	return nil
}

// Send implements channel.Channel. Long replies are split to respect the
// platform's message length limit; only the first chunk keeps the reply
// reference.
func (t *Telegram) Send(ctx context.Context, msg message.OutboundMessage) error {
	chatID, err := strconv.ParseInt(msg.Chat.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid chat ID %q: %w", msg.Chat.ID, err)
	}

	for _, chunk := range channel.SplitMessage(msg, t.config.MaxMessageLength) {
		req := SendMessageRequest{
			ChatID: chatID,
			Text:   chunk.Text,
		}
		if chunk.ReplyToID != "" {
			if replyID, err := strconv.Atoi(chunk.ReplyToID); err == nil {
				req.ReplyToMessageID = replyID
			}
		}
		if _, err := t.client.SendMessage(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// SetInbox implements channel.Channel.
func (t *Telegram) SetInbox(fn func(msg message.InboundMessage) error) {
	t.inbox = fn
}

// SendTyping implements channel.TypingChannel.
func (t *Telegram) SendTyping(ctx context.Context, chat message.Chat) error {
	chatID, err := strconv.ParseInt(chat.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid chat ID %q: %w", chat.ID, err)
	}
	return t.client.SendChatAction(ctx, chatID, "typing")
}
