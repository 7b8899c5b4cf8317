package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestIsHealthyProbe(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "healthy probe", msg: "http request", args: []any{"path", "/healthz", "status", 200}, want: true},
		{name: "failing probe", msg: "http request", args: []any{"path", "/readyz", "status", 503}, want: false},
		{name: "api request", msg: "http request", args: []any{"path", "/v1/teams", "status", 201}, want: false},
		{name: "other event", msg: "team created", args: []any{"path", "/healthz"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHealthyProbe(tt.msg, tt.args); got != tt.want {
				t.Fatalf("isHealthyProbe(%q, %v)=%v want=%v", tt.msg, tt.args, got, tt.want)
			}
		})
	}
}

func TestRecordAttrs(t *testing.T) {
	attrs := recordAttrs([]any{"match_id", "ipl-2026-m01", "scored", 42, 7, "x", "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "ipl-2026-m01" {
		t.Fatalf("unexpected match_id attribute")
	}
	if attrs[1].Key != "scored" || attrs[1].Value.AsInt64() != 42 {
		t.Fatalf("unexpected scored attribute")
	}
	if attrs[2].Key != "arg_2" {
		t.Fatalf("non-string key should be positional, got %q", attrs[2].Key)
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestAttrValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind otellog.Kind
	}{
		{name: "int32", in: int32(7), kind: otellog.KindInt64},
		{name: "uint8", in: uint8(7), kind: otellog.KindInt64},
		{name: "huge uint", in: uint64(1 << 63), kind: otellog.KindString},
		{name: "float", in: 1.5, kind: otellog.KindFloat64},
		{name: "error", in: errors.New("boom"), kind: otellog.KindString},
		{name: "duration", in: 2 * time.Second, kind: otellog.KindString},
		{name: "nil pointer", in: (*int)(nil), kind: otellog.KindEmpty},
		{name: "bytes", in: []byte("ab"), kind: otellog.KindBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attrValue(tt.in, 0).Kind(); got != tt.kind {
				t.Fatalf("kind=%s want=%s", got, tt.kind)
			}
		})
	}
}

func TestAttrValue_NestedMapIsSorted(t *testing.T) {
	v := attrValue(map[string]any{
		"match_ids": []string{"m1", "m2"},
		"inline":    true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 || items[0].Key != "inline" || items[1].Value.Kind() != otellog.KindSlice {
		t.Fatalf("unexpected map layout: %+v", items)
	}
}

func TestSeverityOf(t *testing.T) {
	cases := map[logging.Level]otellog.Severity{
		logging.LevelDebug: otellog.SeverityDebug,
		logging.LevelInfo:  otellog.SeverityInfo,
		logging.LevelWarn:  otellog.SeverityWarn,
		logging.LevelError: otellog.SeverityError,
	}
	for level, want := range cases {
		if got := severityOf(level); got != want {
			t.Fatalf("severityOf(%s)=%v want=%v", level, got, want)
		}
	}
}
