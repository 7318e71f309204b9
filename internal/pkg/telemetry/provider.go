// Package telemetry wires OpenTelemetry tracing for the sheet process.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// ShutdownFunc flushes pending spans
type ShutdownFunc func(context.Context) error

// Config selects where spans are exported
type Config struct {
	ServiceName string
	// Endpoint is an OTLP/HTTP URL such as http://localhost:4318. Empty
	// disables tracing.
	Endpoint string
	Enabled  bool
}

// Setup registers a global tracer provider exporting to cfg.Endpoint.
//
// Tracing is opt-in: when the endpoint is empty or Enabled is false, Setup
// returns a no-op shutdown and leaves the global provider alone, so spans
// started by the orchestrator are discarded.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled || cfg.Endpoint == "" {
		return noop, nil
	}
	if cfg.ServiceName == "" {
		return noop, errors.InvalidArgument("service name is required")
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create trace exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return noop, errors.Wrap(err, "failed to build trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
