// Package jobqueue publishes internal jobs through Upstash QStash.
package jobqueue

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/resilience"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultPublishTimeout = 10 * time.Second

var errTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher posts jobs to QStash, which calls them back on
// TargetBaseURL with the internal job token forwarded.
type QStashPublisher struct {
	client           *fasthttp.Client
	timeout          time.Duration
	baseURL          string
	targetBaseURL    string
	token            string
	internalJobToken string
	retries          int
	breaker          *resilience.CircuitBreaker
	logger           *logging.Logger
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) (*QStashPublisher, error) {
	baseURL, err := httpBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := httpBaseURL(cfg.TargetBaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultPublishTimeout
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.State) {
		logger.Warn("qstash circuit state changed", "from", from, "to", to)
	}

	return &QStashPublisher{
		client: &fasthttp.Client{
			Name:                "cricket-fantasy-qstash",
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
		timeout:          cfg.Timeout,
		baseURL:          baseURL,
		targetBaseURL:    targetBaseURL,
		token:            strings.TrimSpace(cfg.Token),
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		retries:          cfg.Retries,
		breaker:          resilience.NewCircuitBreaker(breakerCfg),
		logger:           logger,
	}, nil
}

// Enqueue publishes payload as JSON for delivery to path. Transport errors,
// throttling and 5xx count against the circuit breaker; other 4xx do not.
func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	if err := ctx.Err(); err != nil {
		return crerr.Wrap(err, "enqueue qstash job")
	}
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("job path is required")
	}
	if payload == nil {
		payload = struct{}{}
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}

	msg := p.newMessage(path, body, delay, strings.TrimSpace(deduplicationID))
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", msg.targetURL),
			attribute.String("qstash.deduplication_id", msg.header("Upstash-Deduplication-Id")),
			attribute.String("qstash.request_curl_preview", msg.curl()),
		)
	}

	err = p.breaker.Do(func() error { return p.send(ctx, msg) }, func(err error) bool {
		return crerr.Is(err, errTransient)
	})
	switch {
	case crerr.Is(err, resilience.ErrCircuitOpen):
		p.logger.WarnContext(ctx, "qstash circuit breaker rejected job", "path", path)
		return fmt.Errorf("qstash is temporarily unavailable: %w", err)
	case err != nil:
		return err
	}

	p.logger.InfoContext(ctx, "qstash job published",
		"path", path,
		"delay", msg.header("Upstash-Delay"),
		"deduplication_id", msg.header("Upstash-Deduplication-Id"),
	)
	return nil
}

func (p *QStashPublisher) send(ctx context.Context, msg message) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	msg.writeTo(req)
	if err := p.client.DoDeadline(req, resp, p.deadline(ctx)); err != nil {
		return fmt.Errorf("%w: publish to %s: %v", errTransient, msg.targetURL, err)
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}
	detail := strings.TrimSpace(truncate(string(resp.Body()), maxLoggedBody))
	if status == fasthttp.StatusRequestTimeout || status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError {
		return fmt.Errorf("%w: publish to %s status=%d body=%s", errTransient, msg.targetURL, status, detail)
	}
	return fmt.Errorf("publish to %s status=%d body=%s", msg.targetURL, status, detail)
}

// deadline is the sooner of the context deadline and the client timeout.
func (p *QStashPublisher) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

func httpBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", crerr.New("value is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return "", crerr.Newf("%q has empty host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
