package riot

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dawichi/hexastats/internal/usecase"
)

// UpstreamError is a classified upstream failure. It unwraps to usecase.ErrRateLimited,
// usecase.ErrNotFound or usecase.ErrTransient, and to the underlying cause when there is one.
type UpstreamError struct {
	Status     int
	RetryAfter time.Duration
	URL        string
	Body       string

	kind  error
	cause error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	b.WriteString(e.kind.Error())
	if e.Status > 0 {
		fmt.Fprintf(&b, ": status=%d", e.Status)
	}
	if e.URL != "" {
		b.WriteString(" url=" + e.URL)
	}
	if e.RetryAfter > 0 {
		b.WriteString(" retry_after=" + e.RetryAfter.String())
	}
	if e.Body != "" {
		b.WriteString(" body=" + e.Body)
	}
	if e.cause != nil {
		b.WriteString(": " + e.cause.Error())
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// classify maps a non-2xx status onto the failure taxonomy.
func classify(status int, retryAfter, rawURL string, body []byte) *UpstreamError {
	upErr := &UpstreamError{Status: status, URL: rawURL, Body: abbreviateBody(body)}
	switch status {
	case http.StatusTooManyRequests:
		upErr.kind = usecase.ErrRateLimited
		upErr.RetryAfter = parseRetryAfter(retryAfter)
	case http.StatusNotFound:
		upErr.kind = usecase.ErrNotFound
	default:
		upErr.kind = usecase.ErrTransient
	}
	return upErr
}

func transportFailure(rawURL string, cause error) *UpstreamError {
	return &UpstreamError{URL: rawURL, kind: usecase.ErrTransient, cause: cause}
}

// parseRetryAfter reads the delay-seconds form only. Riot never sends an HTTP date.
func parseRetryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
