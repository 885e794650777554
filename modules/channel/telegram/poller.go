package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/pkg/message"
)

const (
	maxConsecutivePollingErrors = 5
	errorPauseDuration          = 30 * time.Second
)

// Poller implements long-polling for receiving Telegram updates.
type Poller struct {
	client      *Client
	inbox       func(message.InboundMessage) error
	allowList   *channel.AllowList
	logger      *slog.Logger
	botUsername string
	channelName string
	config      Config

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewPoller creates a new Poller.
func NewPoller(client *Client, inbox func(message.InboundMessage) error, allowList *channel.AllowList, logger *slog.Logger, botUsername, channelName string, config Config) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		client:      client,
		inbox:       inbox,
		allowList:   allowList,
		logger:      logger,
		botUsername: botUsername,
		channelName: channelName,
		config:      config,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// Start launches the polling loop in a goroutine.
func (p *Poller) Start() {
	go p.loop()
}

// Stop cancels the polling loop and waits for it to finish.
// It is safe to call Stop multiple times.
func (p *Poller) Stop() {
	p.stopOnce.Do(p.cancel)
	<-p.done
}

// loop runs the long-polling loop until Stop() is called.
func (p *Poller) loop() {
	defer close(p.done)

	var offset int
	var consecutiveErrors int

	for {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		updates, err := p.client.GetUpdates(p.ctx, GetUpdatesRequest{
			Offset:         offset,
			Timeout:        p.config.PollingTimeout,
			AllowedUpdates: []string{"message"},
		})
		if err != nil {
			if p.ctx.Err() != nil {
				return
			}
			consecutiveErrors++
			p.logger.Error("polling getUpdates failed",
				"error", err,
				"consecutive_errors", consecutiveErrors,
			)

			if consecutiveErrors >= maxConsecutivePollingErrors {
				p.logger.Warn("polling paused after consecutive errors",
					"pause", errorPauseDuration,
				)
				select {
				case <-p.ctx.Done():
					return
				case <-time.After(errorPauseDuration):
				}
				consecutiveErrors = 0
			}
			continue
		}

		consecutiveErrors = 0

		for _, update := range updates {
			offset = update.UpdateID + 1
			p.handleUpdate(&update)
		}
	}
}

// handleUpdate converts, filters, and delivers a single update.
func (p *Poller) handleUpdate(update *Update) {
	msg, err := convertInbound(update, p.botUsername, p.channelName)
	if err != nil {
		p.logger.Debug("skipping update", "update_id", update.UpdateID, "reason", err)
		return
	}

	if !p.allowList.IsAllowed(msg) {
		p.logger.Debug("update denied by allow list",
			"update_id", update.UpdateID,
			"sender", msg.Sender.ID,
			"chat", msg.Chat.ID,
		)
		return
	}

	if err := p.inbox(msg); err != nil {
		p.logger.Error("failed to deliver update to inbox",
			"update_id", update.UpdateID,
			"error", err,
		)
	}
}
