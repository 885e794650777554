package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flemzord/walletclaw/internal/agent"
	"github.com/flemzord/walletclaw/internal/channel"
	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/internal/memory"
	"github.com/flemzord/walletclaw/internal/provider"
	"github.com/flemzord/walletclaw/internal/router"
	"github.com/flemzord/walletclaw/internal/tool"
)

// routerModule wraps a *router.Router to satisfy core.Module, core.Starter,
// and core.Stopper, so the router participates in the App lifecycle.
type routerModule struct {
	router *router.Router
	ctx    context.Context
}

func (m *routerModule) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{ID: "router"}
}

func (m *routerModule) Start() error {
	m.router.Start(m.ctx)
	return nil
}

func (m *routerModule) Stop(ctx context.Context) error {
	m.router.Stop(ctx)
	return nil
}

// janitorModule wraps a *memory.Janitor the same way.
type janitorModule struct {
	janitor *memory.Janitor
}

func (m *janitorModule) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{ID: "memory.janitor"}
}

func (m *janitorModule) Start() error {
	return m.janitor.Start()
}

func (m *janitorModule) Stop(ctx context.Context) error {
	return m.janitor.Stop(ctx)
}

// wireRouter builds the conversation store, compressor, agent controller,
// and router, wires them to every loaded channel, and appends the router
// and the janitor to the app lifecycle. Must be called after LoadModules
// and before Start.
func wireRouter(app *core.App, appCtx *core.AppContext, ids []string, logger *slog.Logger) error {
	// Discover channels from loaded modules.
	dispatcher := channel.NewDispatcher()
	var channels []channel.Channel

	for _, id := range ids {
		mod, ok := app.Module(id)
		if !ok {
			continue
		}
		if ch, ok := mod.(channel.Channel); ok {
			// Register under the full module ID (e.g. "channel.telegram")
			// because that is what the channel sets as msg.Channel in
			// inbound messages.
			if err := dispatcher.Register(id, ch); err != nil {
				return fmt.Errorf("registering channel %s: %w", id, err)
			}
			channels = append(channels, ch)
			logger.Info("router: registered channel", "channel", id)
		}
	}

	if len(channels) == 0 {
		return fmt.Errorf("router: at least one channel module is required")
	}

	// Resolve the provider and tool dialer registered during Provision.
	svc, ok := appCtx.Service("provider")
	if !ok {
		return fmt.Errorf("router: no provider module loaded")
	}
	prov, ok := svc.(provider.Provider)
	if !ok {
		return fmt.Errorf("router: \"provider\" service is not a provider.Provider")
	}

	svc, ok = appCtx.Service("tool.dialer")
	if !ok {
		return fmt.Errorf("router: no tool module loaded")
	}
	dialer, ok := svc.(tool.Dialer)
	if !ok {
		return fmt.Errorf("router: \"tool.dialer\" service is not a tool.Dialer")
	}

	// Read wiring settings from the "agent" config module if loaded.
	var settings SettingsConfig
	settings.defaults()
	if mod, ok := app.Module("agent"); ok {
		if s, ok := mod.(*Settings); ok {
			settings = s.config
		}
	}

	store := memory.NewInMemoryStore()

	var compressor memory.Compressor
	switch settings.Compression {
	case "reset":
		compressor = memory.NewHardReset(store, settings.TokenLimit, logger)
	default:
		compressor = memory.NewSummarizer(store, prov, settings.TokenLimit, logger)
	}

	controller, err := agent.NewController(agent.Config{
		Provider:          prov,
		Dialer:            dialer,
		Store:             store,
		Compressor:        compressor,
		SystemInstruction: settings.SystemInstruction,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("creating agent controller: %w", err)
	}

	r, err := router.NewRouter(router.Config{
		WorkerCount: settings.Workers,
		InboxSize:   settings.InboxSize,
		Exchanger:   controller,
		Store:       store,
		Sender:      dispatcher,
		Channels:    dispatcher,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating router: %w", err)
	}

	// Wire each channel's inbox to the router.
	for _, ch := range channels {
		ch.SetInbox(r.Submit)
	}

	// Append the router and the idle-conversation janitor to the app
	// lifecycle. Submit is safe before the router starts: messages queue
	// in the inbox until the workers come up.
	app.AppendModule("router", &routerModule{
		router: r,
		ctx:    context.Background(),
	})
	app.AppendModule("memory.janitor", &janitorModule{
		janitor: memory.NewJanitor(store, settings.JanitorSchedule, settings.MaxIdle, logger),
	})

	// Register services for the gateway to discover.
	appCtx.RegisterService("memory.store", store)
	appCtx.RegisterService("channel.dispatcher", dispatcher)

	logger.Info("router: wired",
		"channels", len(channels),
		"compression", settings.Compression,
		"token_limit", settings.TokenLimit,
	)
	return nil
}
