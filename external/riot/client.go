package riot

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"

	"github.com/Dawichi/hexastats/internal/domain/account"
	"github.com/Dawichi/hexastats/internal/domain/mastery"
	"github.com/Dawichi/hexastats/internal/domain/rank"
	"github.com/Dawichi/hexastats/internal/domain/region"
	"github.com/Dawichi/hexastats/internal/platform/logging"
	"github.com/Dawichi/hexastats/internal/platform/resilience"
	"github.com/Dawichi/hexastats/internal/usecase"
	"github.com/Dawichi/hexastats/internal/validation"
)

const (
	tokenHeader = "X-Riot-Token"
	redacted    = "REDACTED"

	defaultRatePerSecond  = 20
	defaultRateBurst      = 20
	defaultRequestTimeout = 30 * time.Second
)

type ClientConfig struct {
	Transport Transport
	APIKey    string
	// BaseURL replaces https://{host}.api.riotgames.com for every call when set.
	BaseURL        string
	RatePerSecond  float64
	RateBurst      int
	// RequestTimeout bounds one shared request, pacing and retries included.
	RequestTimeout time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the Riot API client. Every method returns a contract-checked record or a
// classified *UpstreamError.
type Client struct {
	transport      Transport
	apiKey         string
	baseURL        string
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	requestTimeout time.Duration
	flight         resilience.SingleFlight[Response]
}

var _ usecase.RiotProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(nil, TransportConfig{Logger: logger, Redact: redactor(apiKey)})
	}

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker("riot", breakerCfg, func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})

	return &Client{
		transport:      transport,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		limiter:        rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
		requestTimeout: requestTimeout,
	}
}

func (c *Client) FetchAccount(ctx context.Context, platform region.Platform, id account.RiotID) (account.Account, error) {
	path := "/riot/account/v1/accounts/by-riot-id/" + url.PathEscape(id.Name) + "/" + url.PathEscape(id.Tag)
	return fetch[account.Account](ctx, c, string(platform.Cluster()), path, nil, validation.KindAccount)
}

func (c *Client) FetchSummoner(ctx context.Context, platform region.Platform, puuid string) (account.Summoner, error) {
	path := "/lol/summoner/v4/summoners/by-puuid/" + url.PathEscape(puuid)
	return fetch[account.Summoner](ctx, c, string(platform), path, nil, validation.KindSummoner)
}

func (c *Client) FetchMasteries(ctx context.Context, platform region.Platform, puuid string) ([]mastery.Entry, error) {
	path := "/lol/champion-mastery/v4/champion-masteries/by-puuid/" + url.PathEscape(puuid)
	return fetch[[]mastery.Entry](ctx, c, string(platform), path, nil, validation.KindMasteryList)
}

func (c *Client) FetchRankEntries(ctx context.Context, platform region.Platform, summonerID string) ([]rank.Entry, error) {
	path := "/lol/league/v4/entries/by-summoner/" + url.PathEscape(summonerID)
	return fetch[[]rank.Entry](ctx, c, string(platform), path, nil, validation.KindRankEntryList)
}

func (c *Client) FetchMatchIDs(ctx context.Context, platform region.Platform, puuid string, query usecase.MatchIDQuery) ([]string, error) {
	path := "/lol/match/v5/matches/by-puuid/" + url.PathEscape(puuid) + "/ids"
	values := url.Values{}
	values.Set("start", strconv.Itoa(query.Start))
	values.Set("count", strconv.Itoa(query.Count))
	switch query.Type {
	case usecase.QueueTypeRanked, usecase.QueueTypeNormal:
		values.Set("type", string(query.Type))
	}
	return fetch[[]string](ctx, c, string(platform.Cluster()), path, values, validation.KindMatchIDs)
}

// FetchMatch returns the raw match payload. The caller validates it, alone or as part of a batch.
func (c *Client) FetchMatch(ctx context.Context, platform region.Platform, matchID string) ([]byte, error) {
	path := "/lol/match/v5/matches/" + url.PathEscape(matchID)
	return c.get(ctx, string(platform.Cluster()), path, nil)
}

func fetch[T any](ctx context.Context, c *Client, host, path string, query url.Values, kind validation.Kind) (T, error) {
	var out T
	body, err := c.get(ctx, host, path, query)
	if err != nil {
		return out, err
	}
	out, err = validation.Decode[T](kind, body)
	if err != nil {
		c.logger.WarnContext(ctx, "upstream payload failed validation", "kind", kind, "path", path, "error", err)
		return out, crerr.Wrapf(err, "riot %s", kind)
	}
	return out, nil
}

// get runs one classified GET: breaker, in-flight dedupe, pacing, transport.
// The shared request is detached from every caller; a caller that gives up only stops
// waiting, and the outcome still feeds the breaker.
func (c *Client) get(ctx context.Context, host, path string, query url.Values) ([]byte, error) {
	fullURL := c.buildURL(host, path, query)
	safeURL := c.redact(fullURL)

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "riot circuit breaker rejected request", "state", c.breaker.State(), "url", safeURL)
			return nil, transportFailure(safeURL, err)
		}
	}

	done := make(chan fetchResult, 1)
	go func() {
		resp, err, _ := c.flight.Do(fullURL, func() (Response, error) {
			sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.requestTimeout)
			defer cancel()
			if err := c.limiter.Wait(sharedCtx); err != nil {
				return Response{}, err
			}
			return c.transport.Get(sharedCtx, fullURL, map[string]string{tokenHeader: c.apiKey})
		})
		done <- c.settle(ctx, safeURL, resp, err)
	}()

	select {
	case <-ctx.Done():
		return nil, crerr.Wrapf(ctx.Err(), "riot request abandoned by caller: url=%s", safeURL)
	case r := <-done:
		return r.body, r.err
	}
}

type fetchResult struct {
	body []byte
	err  error
}

// settle classifies one shared outcome and records it on the breaker.
func (c *Client) settle(ctx context.Context, safeURL string, resp Response, err error) fetchResult {
	var upErr *UpstreamError
	switch {
	case err != nil:
		upErr = transportFailure(safeURL, crerr.Newf("%s", c.redact(err.Error())))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		upErr = classify(resp.StatusCode, resp.RetryAfter, safeURL, resp.Body)
	}

	if c.circuitEnabled {
		if upErr != nil && crerr.Is(upErr, usecase.ErrTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	if upErr != nil {
		if crerr.Is(upErr, usecase.ErrTransient) {
			c.logger.WarnContext(ctx, "riot request failed", "url", safeURL, "status", upErr.Status, "error", upErr)
		}
		return fetchResult{err: upErr}
	}
	return fetchResult{body: resp.Body}
}

func (c *Client) buildURL(host, path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if c.baseURL != "" {
		_, _ = buf.WriteString(c.baseURL)
	} else {
		_, _ = buf.WriteString("https://")
		_, _ = buf.WriteString(host)
		_, _ = buf.WriteString(".api.riotgames.com")
	}
	_, _ = buf.WriteString(path)
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}

func (c *Client) redact(s string) string {
	return redactor(c.apiKey)(s)
}

func redactor(apiKey string) func(string) string {
	return func(s string) string {
		s = strings.TrimSpace(s)
		if apiKey == "" || s == "" {
			return s
		}
		return strings.ReplaceAll(s, apiKey, redacted)
	}
}
