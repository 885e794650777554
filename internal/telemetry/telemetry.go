// Package telemetry wires the OpenTelemetry tracer provider. When enabled it
// exports spans over OTLP/HTTP; when disabled the global no-op provider stays
// in place and span creation is free.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"gopkg.in/yaml.v3"

	"github.com/flemzord/walletclaw/internal/core"
)

func init() {
	core.RegisterModule(&Telemetry{})
}

var (
	_ core.Configurable = (*Telemetry)(nil)
	_ core.Provisioner  = (*Telemetry)(nil)
	_ core.Validator    = (*Telemetry)(nil)
	_ core.Starter      = (*Telemetry)(nil)
	_ core.Stopper      = (*Telemetry)(nil)
)

// Telemetry is the tracing module.
type Telemetry struct {
	config   Config
	logger   *slog.Logger
	provider *sdktrace.TracerProvider
}

// ModuleInfo implements core.Module.
func (t *Telemetry) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "telemetry",
		New: func() core.Module { return &Telemetry{} },
	}
}

// Configure implements core.Configurable.
func (t *Telemetry) Configure(node *yaml.Node) error {
	if err := node.Decode(&t.config); err != nil {
		return err
	}
	t.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (t *Telemetry) Provision(ctx *core.AppContext) error {
	t.config.defaults()
	t.logger = ctx.Logger
	return nil
}

// Validate implements core.Validator.
func (t *Telemetry) Validate() error {
	return t.config.validate()
}

// Start implements core.Starter. It installs the configured tracer provider
// as the process-global provider.
func (t *Telemetry) Start() error {
	if !t.config.Enabled {
		t.logger.Debug("tracing disabled")
		return nil
	}

	ctx := context.Background()

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(t.config.Endpoint),
	}
	if t.config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(t.config.ServiceName),
	))
	if err != nil {
		return fmt.Errorf("build resource: %w", err)
	}

	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.config.SampleRatio))),
	)
	otel.SetTracerProvider(t.provider)

	t.logger.Info("tracing enabled",
		"endpoint", t.config.Endpoint,
		"service", t.config.ServiceName,
		"sample_ratio", t.config.SampleRatio)
	return nil
}

// Stop implements core.Stopper. It flushes pending spans.
func (t *Telemetry) Stop(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
