package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// withRecorder installs an in-memory exporter for the duration of the test.
func withRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	useProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_, err := Init(context.Background(), Config{Enabled: false})
		require.NoError(t, err)
	})
	return exp
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "indexfs", cfg.ServiceName)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, shutdown(ctx))
	assert.False(t, IsEnabled())

	ctx, span := StartSpan(ctx, SpanDiskCreate)
	defer span.End()
	assert.Empty(t, TraceID(ctx))
	assert.Empty(t, SpanID(ctx))
}

func TestHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("boom"))
		RecordError(ctx, nil)
		SetAttributes(ctx, Disk("main"))
		AddEvent(ctx, "noop")
	})
}

func TestStartDiskSpan(t *testing.T) {
	exp := withRecorder(t)
	assert.True(t, IsEnabled())

	ctx, span := StartDiskSpan(context.Background(), "create", "main", Filename("a"), SizeKB(12))
	assert.NotEmpty(t, TraceID(ctx))
	assert.NotEmpty(t, SpanID(ctx))
	SetAttributes(ctx, IndexBlock(0), BlockCount(4))
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanDiskCreate, spans[0].Name)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "main", attrs[AttrDisk].AsString())
	assert.Equal(t, "create", attrs[AttrOperation].AsString())
	assert.Equal(t, "a", attrs[AttrFilename].AsString())
	assert.EqualValues(t, 12, attrs[AttrSizeKB].AsInt64())
	assert.EqualValues(t, 4, attrs[AttrBlockCount].AsInt64())
}

func TestRecordErrorMarksSpan(t *testing.T) {
	exp := withRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanDiskDelete)
	RecordError(ctx, errors.New("file not found"))
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "file not found", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased")
}
