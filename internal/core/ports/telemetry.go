package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanKind tells which side of a request a span describes.
type SpanKind int

const (
	// SpanKindInternal is an operation inside the process.
	SpanKindInternal SpanKind = iota
	// SpanKindServer handles an incoming request.
	SpanKindServer
	// SpanKindClient issues an outgoing request.
	SpanKindClient
)

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	Kind SpanKind
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithSpanKind sets the kind of the span.
func WithSpanKind(kind SpanKind) SpanOption {
	return func(c *SpanConfig) {
		c.Kind = kind
	}
}
