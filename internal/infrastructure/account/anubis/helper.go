package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

// errTransient marks failures that count against the circuit breaker:
// transport errors, throttling and 5xx responses.
var errTransient = crerr.New("anubis transient failure")

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func transientf(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", usecase.ErrDependencyUnavailable, errTransient, fmt.Sprintf(format, args...))
}

// statusError maps a non-200 introspection status. A 403 means Anubis refused
// our admin key, so it is our dependency failing, not the caller's token.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: anubis admin key rejected", usecase.ErrDependencyUnavailable)
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return transientf("introspection status=%d", code)
	default:
		return fmt.Errorf("%w: unexpected introspection status=%d", usecase.ErrDependencyUnavailable, code)
	}
}

// principalKey hashes the token so raw bearer tokens never sit in the cache.
func principalKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "principal:" + hex.EncodeToString(sum[:])
}

// endpointURL joins a relative path onto base; an absolute path is used as is.
func endpointURL(base, path string) string {
	path = strings.TrimSpace(path)
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	joined, err := url.JoinPath(strings.TrimSpace(base), path)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return joined
}
