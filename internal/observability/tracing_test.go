package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

func TestNewTracer_Disabled(t *testing.T) {
	t.Parallel()

	tracer, err := NewTracer(context.Background(), TracerConfig{Enabled: false})
	require.NoError(t, err)

	assert.False(t, tracer.Enabled())
	assert.NotNil(t, tracer.Tracer())

	_, span := tracer.Tracer().Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNewTracer_EnabledWithoutExporter(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tracer, err := NewTracer(context.Background(),
		TracerConfig{Enabled: true, SamplingRate: 1.0},
		sdktrace.WithSpanProcessor(recorder),
	)
	require.NoError(t, err)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	assert.True(t, tracer.Enabled())

	_, span := tracer.Tracer().Start(context.Background(), "router.match")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "router.match", spans[0].Name())

	service, ok := spans[0].Resource().Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, DefaultServiceName, service.AsString())
}

func TestNewTracer_ServiceName(t *testing.T) {
	t.Parallel()

	tracer, err := NewTracer(context.Background(), TracerConfig{Enabled: true, ServiceName: "routematch"})
	require.NoError(t, err)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	service, ok := tracer.res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "routematch", service.AsString())

	sdkName, ok := tracer.res.Set().Value(semconv.TelemetrySDKNameKey)
	require.True(t, ok)
	assert.Equal(t, "opentelemetry", sdkName.AsString())
}

func TestCreateSampler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rate        float64
		description string
	}{
		{name: "always", rate: 1.0, description: "AlwaysOnSampler"},
		{name: "above one", rate: 2.0, description: "AlwaysOnSampler"},
		{name: "never", rate: 0, description: "AlwaysOffSampler"},
		{name: "ratio", rate: 0.5, description: "TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.description, createSampler(tt.rate).Description())
		})
	}
}
