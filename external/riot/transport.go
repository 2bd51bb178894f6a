package riot

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Dawichi/hexastats/internal/platform/logging"
)

const (
	maxBodyBytes       = 6 << 20
	defaultTimeout     = 10 * time.Second
	defaultBackoffStep = 500 * time.Millisecond
)

// Response is what a transport hands back for any status code. Only network failures are errors.
type Response struct {
	StatusCode int
	RetryAfter string
	Body       []byte
}

// Transport performs one logical GET, retrying on its own terms.
type Transport interface {
	Get(ctx context.Context, rawURL string, header map[string]string) (Response, error)
}

type TransportConfig struct {
	Timeout    time.Duration
	MaxRetries int
	// Backoff is the first retry delay. The n-th retry waits n times as long.
	Backoff time.Duration
	Logger  *logging.Logger
	// Redact is applied to urls and error text before they are logged.
	Redact func(string) string
}

func (cfg TransportConfig) normalize() TransportConfig {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoffStep
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Redact == nil {
		cfg.Redact = func(s string) string { return s }
	}
	return cfg
}

// retryable covers server errors only. 429 goes back to the caller so it can surface a retry-later.
func retryable(status int) bool {
	return status >= http.StatusInternalServerError
}

// withRetries runs attempt up to cfg.MaxRetries+1 times, sleeping between attempts.
func withRetries(ctx context.Context, cfg TransportConfig, rawURL string, attempt func() (Response, error)) (Response, error) {
	var (
		resp    Response
		lastErr error
	)
	for i := 0; i <= cfg.MaxRetries; i++ {
		resp, lastErr = attempt()
		if lastErr == nil && !retryable(resp.StatusCode) {
			return resp, nil
		}
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		if i == cfg.MaxRetries {
			break
		}

		cfg.Logger.DebugContext(ctx, "retrying upstream request",
			"url", cfg.Redact(rawURL),
			"attempt", i+1,
			"status", resp.StatusCode,
		)
		timer := time.NewTimer(time.Duration(i+1) * cfg.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}
	if lastErr != nil {
		return Response{}, lastErr
	}
	return resp, nil
}

// HTTPTransport is the net/http transport, traced through otelhttp.
type HTTPTransport struct {
	client *http.Client
	cfg    TransportConfig
}

// NewHTTPTransport traces every request. A caller supplied client is copied and its round
// tripper wrapped unless it is already instrumented.
func NewHTTPTransport(client *http.Client, cfg TransportConfig) *HTTPTransport {
	cfg = cfg.normalize()
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	} else {
		copied := *client
		client = &copied
	}
	if _, traced := client.Transport.(*otelhttp.Transport); !traced {
		base := client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client.Transport = otelhttp.NewTransport(base)
	}
	return &HTTPTransport{client: client, cfg: cfg}
}

func (t *HTTPTransport) Get(ctx context.Context, rawURL string, header map[string]string) (Response, error) {
	return withRetries(ctx, t.cfg, rawURL, func() (Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return Response{}, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range header {
			req.Header.Set(k, v)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return Response{}, crerr.Newf("send request: %s", t.cfg.Redact(err.Error()))
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return Response{}, crerr.Wrap(err, "read response body")
		}
		return Response{
			StatusCode: resp.StatusCode,
			RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
			Body:       body,
		}, nil
	})
}
