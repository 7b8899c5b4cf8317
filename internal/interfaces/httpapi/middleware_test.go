package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
	"go.uber.org/zap/zapcore"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIsProbeRequest(t *testing.T) {
	tests := map[string]bool{
		"/healthz":    true,
		" /readyz ":   true,
		"/LIVEZ":      true,
		"/v1/matches": false,
		"/docs":       false,
		"/":           false,
	}
	for path, want := range tests {
		if got := isProbeRequest(path); got != want {
			t.Fatalf("isProbeRequest(%q)=%v want=%v", path, got, want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "case insensitive scheme", header: "bearer  abc ", want: "abc"},
		{name: "missing", header: "", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcg==", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, usecase.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("bearerToken(%q)=%q,%v want %q", tt.header, got, err, tt.want)
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
	}{
		{name: "matching token", configured: "job-secret", sent: "job-secret", wantStatus: http.StatusOK},
		{name: "wrong token", configured: "job-secret", sent: "guess", wantStatus: http.StatusUnauthorized},
		{name: "missing token", configured: "job-secret", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, usecase.RecomputeScoresJobPath, nil)
			if tt.sent != "" {
				req.Header.Set(internalJobTokenHeader, tt.sent)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.configured, okHandler()).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{name: "configured origin", allowed: []string{"https://cricket-fantasy.example.com"}, method: http.MethodGet, origin: "https://cricket-fantasy.example.com", wantOrigin: "https://cricket-fantasy.example.com", wantStatus: http.StatusOK},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://cricket-fantasy.example.com", wantOrigin: "*", wantStatus: http.StatusNoContent},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://not-allowed.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/matches", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(zapcore.AddSync(&buf), logging.LevelInfo)

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/boom" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/healthz", "/v1/matches", "/v1/boom"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected probe to be skipped, got %d lines: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"status":200`) || !strings.Contains(lines[0], `"bytes":2`) {
		t.Fatalf("unexpected access log: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"ERROR"`) || !strings.Contains(lines[1], `"status":502`) {
		t.Fatalf("expected server error at error level: %s", lines[1])
	}
}
