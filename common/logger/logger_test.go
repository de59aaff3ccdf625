package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"fitness-scheduler/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestJSONLoggerAddsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, true)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	log.InfoContext(ctx, "member created", "member_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "member created", entry["msg"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
	assert.EqualValues(t, 7, entry["member_id"])
}

func TestJSONLoggerWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, true)

	log.Info("no span")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
}

func TestTextLoggerColorsErrors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, false)

	log.Error("boom", "error", "db down")
	assert.Contains(t, buf.String(), "[31mboom")
	assert.Contains(t, buf.String(), "db down")

	buf.Reset()
	log.Info("fine")
	assert.NotContains(t, buf.String(), "[31m")
}
