package anubis

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		code      int
		want      error
		transient bool
	}{
		{code: http.StatusUnauthorized, want: usecase.ErrUnauthorized},
		{code: http.StatusForbidden, want: usecase.ErrDependencyUnavailable},
		{code: http.StatusTooManyRequests, want: usecase.ErrDependencyUnavailable, transient: true},
		{code: http.StatusBadGateway, want: usecase.ErrDependencyUnavailable, transient: true},
		{code: http.StatusTeapot, want: usecase.ErrDependencyUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := statusError(tt.code)
			if !errors.Is(err, tt.want) {
				t.Fatalf("statusError(%d)=%v want %v", tt.code, err, tt.want)
			}
			if isTransient(err) != tt.transient {
				t.Fatalf("statusError(%d) transient=%v want %v", tt.code, isTransient(err), tt.transient)
			}
		})
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{base: "https://anubis.example.com", path: "/v1/auth/introspect", want: "https://anubis.example.com/v1/auth/introspect"},
		{base: "https://anubis.example.com/", path: "v1/auth/introspect", want: "https://anubis.example.com/v1/auth/introspect"},
		{base: "https://anubis.example.com/api", path: "/introspect", want: "https://anubis.example.com/api/introspect"},
		{base: "https://ignored.example.com", path: "https://auth.example.com/introspect", want: "https://auth.example.com/introspect"},
	}

	for _, tt := range tests {
		if got := endpointURL(tt.base, tt.path); got != tt.want {
			t.Fatalf("endpointURL(%q, %q)=%q want=%q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestPrincipalKey_DoesNotLeakToken(t *testing.T) {
	key := principalKey("secret-token")
	if strings.Contains(key, "secret-token") || !strings.HasPrefix(key, "principal:") {
		t.Fatalf("unexpected cache key %q", key)
	}
	if key != principalKey("secret-token") {
		t.Fatalf("cache key must be stable")
	}
}
