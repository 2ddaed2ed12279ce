package telemetry_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/margin/internal/adapters/telemetry"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *telemetry.Tracer) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return rec, telemetry.NewTracerWithProvider(tp)
}

func TestTracer_Start(t *testing.T) {
	rec, tracer := newRecorder(t)

	_, span := tracer.Start(context.Background(), "annotations.list", ports.WithSpanKind(ports.SpanKindServer))
	span.SetAttribute("url", "/docs")
	span.SetAttribute("count", 2)
	span.SetAttribute("ok", true)
	span.SetAttribute("other", struct{ A int }{A: 1})
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "annotations.list", ended[0].Name())
	assert.Equal(t, trace.SpanKindServer, ended[0].SpanKind())
	assert.Contains(t, ended[0].Attributes(), attribute.String("url", "/docs"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int("count", 2))
	assert.Contains(t, ended[0].Attributes(), attribute.Bool("ok", true))
	assert.Contains(t, ended[0].Attributes(), attribute.String("other", "{1}"))
}

func TestSpan_RecordError(t *testing.T) {
	rec, tracer := newRecorder(t)

	_, span := tracer.Start(context.Background(), "annotations.create", ports.WithSpanKind(ports.SpanKindClient))
	span.RecordError(errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, trace.SpanKindClient, ended[0].SpanKind())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestInjectExtract(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	_, tracer := newRecorder(t)

	ctx, span := tracer.Start(context.Background(), "client")
	defer span.End()

	h := http.Header{}
	telemetry.Inject(ctx, h)
	require.NotEmpty(t, h.Get("traceparent"))

	extracted := telemetry.Extract(context.Background(), h)
	assert.Equal(t,
		trace.SpanContextFromContext(ctx).TraceID(),
		trace.SpanContextFromContext(extracted).TraceID(),
	)
}

func TestSetup_NoEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), domain.TelemetryConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
