// Package telemetry implements tracing over OpenTelemetry.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/zerr"
)

// Setup installs the global tracer provider exporting to cfg.OTLPEndpoint.
//
// Export is opt-in: with an empty endpoint only the W3C propagator is installed and
// the returned shutdown does nothing. The shutdown function flushes pending spans.
func Setup(ctx context.Context, cfg domain.TelemetryConfig) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	otel.SetTextMapPropagator(propagation.TraceContext{})

	if cfg.OTLPEndpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return noop, zerr.With(zerr.Wrap(err, "failed to create trace exporter"), "endpoint", cfg.OTLPEndpoint)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "margin"
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(name)))
	if err != nil {
		return noop, zerr.Wrap(err, "failed to create trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
