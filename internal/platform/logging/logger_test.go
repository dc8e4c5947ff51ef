package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := sonic.UnmarshalString(line, &m); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf, ServiceName: "golf-tournament", Environment: "dev"})

	logger.Debug("hidden")
	logger.Info("recalculate standings finished", "tournament_id", "spring-cup", "players", 6)
	logger.Error("upsert standing failed", "error", errors.New("conflict"))

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines above debug, got %d", len(lines))
	}
	if lines[0]["msg"] != "recalculate standings finished" || lines[0]["tournament_id"] != "spring-cup" {
		t.Fatalf("unexpected first line %v", lines[0])
	}
	if lines[0]["service"] != "golf-tournament" || lines[0]["env"] != "dev" {
		t.Fatalf("expected service fields, got %v", lines[0])
	}
	if lines[1]["error"] != "conflict" {
		t.Fatalf("expected error field, got %v", lines[1])
	}
	if _, ok := lines[1]["stacktrace"]; !ok {
		t.Fatalf("expected stacktrace at error level")
	}
	if caller, _ := lines[0]["caller"].(string); !strings.HasPrefix(caller, "logging/logger_test.go") {
		t.Fatalf("expected caller to point at the test, got %q", caller)
	}
}

func TestInfoContext_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "hello")
	logger.InfoContext(context.Background(), "no trace")

	lines := decodeLines(t, &buf)
	if lines[0]["trace_id"] != traceID.String() || lines[0]["span_id"] != spanID.String() {
		t.Fatalf("expected trace fields, got %v", lines[0])
	}
	if _, ok := lines[1]["trace_id"]; ok {
		t.Fatalf("expected no trace fields without span, got %v", lines[1])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{in: "DEBUG", want: LevelDebug, ok: true},
		{in: "", want: LevelInfo, ok: true},
		{in: "warning", want: LevelWarn, ok: true},
		{in: "error", want: LevelError, ok: true},
		{in: "verbose", want: LevelInfo, ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"a", 1, 2, "b"})
	if len(fields) != 2 || fields[1].Key != "arg" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestContextWith_AccumulatesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	ctx := ContextWith(context.Background(), "request_id", "req-1")
	ctx = ContextWith(ctx, "tournament_id", "spring-cup")

	logger.InfoContext(ctx, "standings published", "players", 6)
	logger.Info("plain line")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["request_id"] != "req-1" || lines[0]["tournament_id"] != "spring-cup" || lines[0]["players"] != float64(6) {
		t.Fatalf("expected context fields, got %v", lines[0])
	}
	if _, ok := lines[1]["request_id"]; ok {
		t.Fatalf("expected no context fields on plain line, got %v", lines[1])
	}
	if ContextWith(ctx) != ctx {
		t.Fatalf("expected no-op without args")
	}
}
