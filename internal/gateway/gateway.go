// Package gateway exposes the operational HTTP surface: health, status,
// and Prometheus metrics. It is a leaf module, nothing imports it.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/internal/memory"
	"github.com/flemzord/walletclaw/internal/provider"
)

func init() {
	core.RegisterModule(&Gateway{})
}

// Compile-time interface guards.
var (
	_ core.Configurable = (*Gateway)(nil)
	_ core.Provisioner  = (*Gateway)(nil)
	_ core.Validator    = (*Gateway)(nil)
	_ core.Starter      = (*Gateway)(nil)
	_ core.Stopper      = (*Gateway)(nil)
)

// channelLister reports registered channel names. Satisfied by
// channel.Dispatcher, resolved via the service registry to keep the
// gateway a leaf.
type channelLister interface {
	Channels() []string
}

// Gateway is the HTTP gateway module.
type Gateway struct {
	config    Config
	appCtx    *core.AppContext
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time

	// Resolved lazily at Start() via service registry.
	store    memory.Store
	provider provider.Provider
	channels channelLister
}

// ModuleInfo implements core.Module.
func (g *Gateway) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "gateway.http",
		New: func() core.Module { return &Gateway{} },
	}
}

// Configure implements core.Configurable.
func (g *Gateway) Configure(node *yaml.Node) error {
	if err := node.Decode(&g.config); err != nil {
		return err
	}
	g.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (g *Gateway) Provision(ctx *core.AppContext) error {
	g.config.defaults()
	g.appCtx = ctx
	g.logger = ctx.Logger
	return nil
}

// Validate implements core.Validator.
func (g *Gateway) Validate() error {
	if _, err := net.ResolveTCPAddr("tcp", g.config.Bind); err != nil {
		return errors.New("gateway: invalid bind address: " + g.config.Bind)
	}
	return nil
}

// Start implements core.Starter. It resolves dependencies from the service
// registry (lazy binding) and starts the HTTP server.
func (g *Gateway) Start() error {
	// Resolve optional services, graceful degradation if missing.
	if svc, ok := g.appCtx.Service("memory.store"); ok {
		if store, ok := svc.(memory.Store); ok {
			g.store = store
		}
	}
	if svc, ok := g.appCtx.Service("provider"); ok {
		if p, ok := svc.(provider.Provider); ok {
			g.provider = p
		}
	}
	if svc, ok := g.appCtx.Service("channel.dispatcher"); ok {
		if d, ok := svc.(channelLister); ok {
			g.channels = d
		}
	}

	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop implements core.Stopper. Graceful shutdown with configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
