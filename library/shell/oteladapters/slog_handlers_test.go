package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-records-go/library/shell/oteladapters"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		record := map[string]any{}
		require.NoError(t, jsoniter.Unmarshal(line, &record))
		records = append(records, record)
	}

	return records
}

func Test_TraceCorrelatingHandler_AddsSpanIDs(t *testing.T) {
	// arrange
	buf := &bytes.Buffer{}
	logger := slog.New(oteladapters.NewTraceCorrelatingHandler(slog.NewJSONHandler(buf, nil)))
	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	// act
	logger.InfoContext(ctx, "inside span")
	logger.InfoContext(context.Background(), "outside span")

	// assert
	records := decodeLines(t, buf)
	require.Len(t, records, 2)
	assert.Equal(t, span.SpanContext().TraceID().String(), records[0]["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), records[0]["span_id"])
	assert.NotContains(t, records[1], "trace_id")
}

func Test_NewBridgedLogger_WritesLocally(t *testing.T) {
	// arrange
	buf := &bytes.Buffer{}
	logger := oteladapters.NewBridgedLogger("test", slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// act
	logger.With("component", "emitter").Info("hello", "key", "value")
	logger.Debug("below level")

	// assert
	records := decodeLines(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0]["msg"])
	assert.Equal(t, "emitter", records[0]["component"])
	assert.Equal(t, "value", records[0]["key"])
}
