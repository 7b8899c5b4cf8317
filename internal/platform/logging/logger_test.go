package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_InfoContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "team created", "team_id", "t-1")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["team_id"] != "t-1" {
		t.Fatalf("unexpected team_id field: %v", fields["team_id"])
	}
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id field: %v", fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("unexpected span_id field: %v", fields["span_id"])
	}
}

func TestLogger_ErrorValuesAreNamedErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Error("save failed", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestSetMirror_ReceivesEnabledRecordsOnly(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.DebugContext(t.Context(), "skipped")
	logger.WarnContext(t.Context(), "kept")

	if len(got) != 1 || got[0] != "warn:kept" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.InfoContext(context.Background(), "no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestNew_WritesJSONWithCallSite(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zapcore.AddSync(&buf), LevelInfo).With("service", "cricket-fantasy-api")

	logger.Debug("dropped")
	logger.Info("match listed", "count", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["msg"] != "match listed" || record["level"] != "INFO" || record["service"] != "cricket-fantasy-api" {
		t.Fatalf("unexpected record: %v", record)
	}
	if caller, _ := record["caller"].(string); !strings.HasPrefix(caller, "logging/logger_test.go") {
		t.Fatalf("caller should be the call site, got %q", caller)
	}
}
