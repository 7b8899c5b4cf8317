package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
)

const (
	logScope         = "cricket-fantasy/internal/platform/logging"
	requestLogMsg    = "http request"
	maxAttrNestDepth = 3
)

var probePaths = []string{"/healthz", "/livez", "/readyz"}

// logExporter forwards structured records to the global OTel log provider,
// which uptrace wires to its collector.
type logExporter struct {
	otel otellog.Logger
}

func newLogExporter(version string) *logExporter {
	return &logExporter{
		otel: otelglobal.Logger(logScope, otellog.WithInstrumentationVersion(version)),
	}
}

func (e *logExporter) mirror(ctx context.Context, level logging.Level, msg string, args ...any) {
	if isHealthyProbe(msg, args) {
		return
	}

	sev := severityOf(level)
	if !e.otel.Enabled(ctx, otellog.EnabledParameters{Severity: sev, EventName: msg}) {
		return
	}

	var rec otellog.Record
	ts := time.Now().UTC()
	rec.SetTimestamp(ts)
	rec.SetObservedTimestamp(ts)
	rec.SetSeverity(sev)
	rec.SetSeverityText(level.CapitalString())
	rec.SetEventName(msg)
	rec.SetBody(otellog.StringValue(msg))
	if attrs := recordAttrs(args); len(attrs) > 0 {
		rec.AddAttributes(attrs...)
	}
	e.otel.Emit(ctx, rec)
}

// isHealthyProbe reports access logs for probe endpoints that did not fail.
func isHealthyProbe(msg string, args []any) bool {
	if msg != requestLogMsg {
		return false
	}

	var path string
	var status int
	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "path":
			path, _ = args[i+1].(string)
		case "status":
			status, _ = args[i+1].(int)
		}
	}
	return slices.Contains(probePaths, strings.ToLower(path)) && status < 500
}

func recordAttrs(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}

	out := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 == len(args) {
			out = append(out, otellog.Empty(key))
			break
		}
		out = append(out, otellog.KeyValue{Key: key, Value: attrValue(args[i+1], 0)})
	}
	return out
}

func severityOf(level logging.Level) otellog.Severity {
	switch {
	case level < logging.LevelInfo:
		return otellog.SeverityDebug
	case level == logging.LevelInfo:
		return otellog.SeverityInfo
	case level == logging.LevelWarn:
		return otellog.SeverityWarn
	case level == logging.LevelError:
		return otellog.SeverityError
	default:
		return otellog.SeverityFatal
	}
}

func attrValue(v any, depth int) otellog.Value {
	switch x := v.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(x)
	case bool:
		return otellog.BoolValue(x)
	case []byte:
		return otellog.BytesValue(slices.Clone(x))
	case time.Time:
		return otellog.StringValue(x.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.StringValue(x.String())
	case error:
		return otellog.StringValue(x.Error())
	case fmt.Stringer:
		return otellog.StringValue(x.String())
	}
	if depth >= maxAttrNestDepth {
		return otellog.StringValue(fmt.Sprint(v))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return otellog.Int64Value(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return otellog.Int64Value(int64(u))
		}
		return otellog.StringValue(fmt.Sprint(v))
	case reflect.Float32, reflect.Float64:
		return otellog.Float64Value(rv.Float())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return attrValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		items := make([]otellog.Value, rv.Len())
		for i := range items {
			items[i] = attrValue(rv.Index(i).Interface(), depth+1)
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		kvs := make([]otellog.KeyValue, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			kvs = append(kvs, otellog.KeyValue{
				Key:   iter.Key().String(),
				Value: attrValue(iter.Value().Interface(), depth+1),
			})
		}
		slices.SortFunc(kvs, func(a, b otellog.KeyValue) int { return strings.Compare(a.Key, b.Key) })
		return otellog.MapValue(kvs...)
	}
	return otellog.StringValue(fmt.Sprint(v))
}
