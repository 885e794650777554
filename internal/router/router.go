package router

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/flemzord/walletclaw/internal/agent"
	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/internal/memory"
	"github.com/flemzord/walletclaw/pkg/message"
)

const (
	// DefaultWorkerCount is the number of exchange workers when the
	// config leaves it unset.
	DefaultWorkerCount = 10

	defaultInboxSize = 256
)

// envelope pairs an inbound message with the lane key it serializes on.
type envelope struct {
	Message message.InboundMessage
	UserID  string
}

// Exchanger turns one user message into one reply. Implemented by
// agent.Controller; faked in tests.
type Exchanger interface {
	HandleMessage(ctx context.Context, req agent.Request) (agent.Result, error)
}

// ResponseSender delivers outbound messages. Implemented by
// channel.Dispatcher.
type ResponseSender interface {
	Send(ctx context.Context, msg message.OutboundMessage) error
}

// ChannelLookup resolves channels by name, used to drive typing
// indicators while a tool call is running. Implemented by
// channel.Dispatcher; nil means no typing.
type ChannelLookup interface {
	Get(name string) (channel.Channel, bool)
}

// Config holds the configuration for a Router.
type Config struct {
	WorkerCount int
	InboxSize   int
	Exchanger   Exchanger
	Store       memory.Store
	Sender      ResponseSender
	Channels    ChannelLookup
	Logger      *slog.Logger
}

// withDefaults returns a copy of the config with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.WorkerCount <= 0 {
		c.WorkerCount = DefaultWorkerCount
	}
	if c.InboxSize <= 0 {
		c.InboxSize = defaultInboxSize
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Router is the central dispatch layer. It consumes inbound messages
// from channels, serializes exchanges per user, runs them through the
// agent, and sends replies back via the correct channel.
type Router struct {
	config   Config
	inbox    chan envelope
	inboxMu  sync.RWMutex
	lanes    *LaneLock
	workers  sync.WaitGroup
	cancel   context.CancelFunc
	stopOnce sync.Once
	logger   *slog.Logger
	stopped  atomic.Bool
}

// NewRouter creates a new Router with the given configuration.
func NewRouter(cfg Config) (*Router, error) {
	cfg = cfg.withDefaults()

	if cfg.Exchanger == nil {
		return nil, ErrNoExchanger
	}
	if cfg.Sender == nil {
		return nil, ErrNoResponseSender
	}
	if cfg.Store == nil {
		return nil, ErrNoStore
	}

	return &Router{
		config: cfg,
		inbox:  make(chan envelope, cfg.InboxSize),
		lanes:  NewLaneLock(),
		logger: cfg.Logger,
	}, nil
}

// Start launches the worker goroutines and begins processing messages.
func (r *Router) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.inboxMu.Lock()
	if r.stopped.Load() {
		r.inboxMu.Unlock()
		cancel()
		r.logger.Warn("router: start ignored, router already stopped")
		return
	}
	r.cancel = cancel
	r.inboxMu.Unlock()

	for range r.config.WorkerCount {
		r.workers.Add(1)
		go func() {
			defer r.workers.Done()
			for env := range r.inbox {
				r.handle(ctx, env)
			}
		}()
	}
	r.logger.Info("router: started", "workers", r.config.WorkerCount, "inbox_size", r.config.InboxSize)
}

// Submit enqueues an inbound message for processing.
// If the inbox is full, the message is dropped with a warning log.
func (r *Router) Submit(msg message.InboundMessage) error {
	r.inboxMu.RLock()
	defer r.inboxMu.RUnlock()

	if r.stopped.Load() {
		return ErrRouterStopped
	}

	env := envelope{Message: msg, UserID: msg.Sender.ID}

	// Non-blocking send, drop with warning if inbox is full.
	select {
	case r.inbox <- env:
		return nil
	default:
		droppedTotal.Inc()
		r.logger.Warn("router: inbox full, message dropped",
			"channel", msg.Channel,
			"chat_id", msg.Chat.ID,
		)
		return ErrInboxFull
	}
}

// Stop gracefully shuts down the router: closes inbox, drains workers,
// cancels context.
func (r *Router) Stop(_ context.Context) {
	r.stopOnce.Do(func() {
		r.logger.Info("router: stopping")

		r.inboxMu.Lock()
		r.stopped.Store(true)
		close(r.inbox)
		cancel := r.cancel
		r.inboxMu.Unlock()

		// Cancel before waiting so in-flight handlers can terminate.
		if cancel != nil {
			cancel()
		}

		r.workers.Wait()
		r.logger.Info("router: stopped")
	})
}

// handle processes one inbound message end to end under the user's lane.
// The lane is held across the whole exchange, including the history
// update and compression check inside the agent, so a user's turns never
// interleave.
func (r *Router) handle(ctx context.Context, env envelope) {
	r.lanes.Acquire(env.UserID)
	defer r.lanes.Release(env.UserID)

	if env.Message.IsCommand() {
		messagesTotal.WithLabelValues("command").Inc()
		r.handleCommand(ctx, env)
		return
	}
	messagesTotal.WithLabelValues("chat").Inc()

	r.logger.Info("router: message received",
		"channel", env.Message.Channel,
		"chat_id", env.Message.Chat.ID,
		"user", env.UserID,
	)

	// Typing runs from the moment the agent signals a tool call until
	// the exchange completes.
	exCtx, cancelTyping := context.WithCancel(ctx)
	defer cancelTyping()

	res, err := r.config.Exchanger.HandleMessage(exCtx, agent.Request{
		UserID: env.UserID,
		Text:   env.Message.Text,
		Typing: r.typingFunc(env.Message),
	})
	cancelTyping()

	if err != nil {
		r.logger.Error("router: exchange failed",
			"user", env.UserID,
			"error", err,
		)
		r.send(ctx, env.Message, errorText(err))
		return
	}

	r.send(ctx, env.Message, res.Reply)
}

// typingFunc builds the typing callback handed to the agent. It starts a
// typing loop on the message's channel when the channel supports it.
func (r *Router) typingFunc(in message.InboundMessage) func(context.Context) {
	if r.config.Channels == nil {
		return nil
	}
	ch, ok := r.config.Channels.Get(in.Channel)
	if !ok {
		return nil
	}
	tc, ok := ch.(channel.TypingChannel)
	if !ok {
		return nil
	}
	return func(ctx context.Context) {
		channel.StartTypingLoop(ctx, tc, in.Chat, 0)
	}
}
