package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/user"
	basecache "github.com/riskibarqy/cricket-fantasy/internal/platform/cache"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

const (
	adminKeyHeader    = "x-admin-key"
	principalCacheTTL = time.Minute
	maxResponseBytes  = 1 << 20
)

type CircuitBreakerConfig = resilience.CircuitBreakerConfig

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	logger        *logging.Logger
	principals    *basecache.Store
	breaker       *resilience.CircuitBreaker
}

func NewClient(
	httpClient *http.Client,
	baseURL, introspectPath, adminKey string,
	breakerCfg CircuitBreakerConfig,
	logger *logging.Logger,
) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	breakerCfg.OnStateChange = func(from, to resilience.State) {
		logger.Warn("anubis circuit state changed", "from", from, "to", to)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: endpointURL(baseURL, introspectPath),
		adminKey:      strings.TrimSpace(adminKey),
		logger:        logger,
		principals:    basecache.NewStore(principalCacheTTL),
		breaker:       resilience.NewCircuitBreaker(breakerCfg),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	// Only active principals are stored; rejected tokens always hit Anubis again.
	v, err := c.principals.GetOrLoad(ctx, principalKey(token), func(ctx context.Context) (any, error) {
		return c.introspectGuarded(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, _ := v.(user.Principal)
	return principal, nil
}

func (c *Client) introspectGuarded(ctx context.Context, token string) (user.Principal, error) {
	var principal user.Principal
	err := c.breaker.Do(func() error {
		var callErr error
		principal, callErr = c.introspect(ctx, token)
		return callErr
	}, isTransient)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "anubis circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: anubis circuit open", usecase.ErrDependencyUnavailable)
	}
	return principal, err
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, transientf("request introspection: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, transientf("read introspect response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := statusError(resp.StatusCode)
		if resp.StatusCode != http.StatusUnauthorized {
			c.logger.WarnContext(ctx, "anubis introspection failed", "status_code", resp.StatusCode, "error", err)
		}
		return user.Principal{}, err
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: decode introspect response: %v", usecase.ErrDependencyUnavailable, err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has empty user_id", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{
		UserID: strings.TrimSpace(decoded.UserID),
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
