package riot

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
)

// FastTransport is the fasthttp transport, selected with RIOT_TRANSPORT=fasthttp.
type FastTransport struct {
	client *fasthttp.Client
	cfg    TransportConfig
}

func NewFastTransport(cfg TransportConfig) *FastTransport {
	cfg = cfg.normalize()
	return &FastTransport{
		client: &fasthttp.Client{
			Name:                "hexastats",
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxResponseBodySize: maxBodyBytes,
			MaxIdleConnDuration: time.Minute,
		},
		cfg: cfg,
	}
}

func (t *FastTransport) Get(ctx context.Context, rawURL string, header map[string]string) (Response, error) {
	return withRetries(ctx, t.cfg, rawURL, func() (Response, error) {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(rawURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Accept", "application/json")
		for k, v := range header {
			req.Header.Set(k, v)
		}

		timeout := t.cfg.Timeout
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining < timeout {
				timeout = remaining
			}
		}
		if timeout <= 0 {
			return Response{}, context.DeadlineExceeded
		}

		if err := t.client.DoTimeout(req, resp, timeout); err != nil {
			return Response{}, crerr.Newf("send request: %s", t.cfg.Redact(err.Error()))
		}

		// the response buffer goes back to the pool on release
		body := append([]byte(nil), resp.Body()...)
		return Response{
			StatusCode: resp.StatusCode(),
			RetryAfter: strings.TrimSpace(string(resp.Header.Peek("Retry-After"))),
			Body:       body,
		}, nil
	})
}
