package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	// RequestsPerSecond bounds requests to any single host. Hosts listed in
	// RateLimiters use their own limiter instead.
	RequestsPerSecond float64
	RateLimiters      map[string]*rate.Limiter
}

// HTTPFetcher implements Fetcher using net/http with an explicit timeout and
// per-host rate limiting. Requests are not retried.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "roster-cli/1.0"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	limiters := make(map[string]*rate.Limiter)
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: limiters,
	}
}

func (f *HTTPFetcher) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if lim, ok := f.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(f.opts.RequestsPerSecond), 1)
	f.limiters[host] = lim
	return lim
}

// Fetch retrieves the URL and returns its body decoded to UTF-8 according to
// the response charset. Anti-bot challenge pages are reported as errors
// even when served with a 2xx status.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: eris.Wrap(err, "create request")}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if err := f.limiterFor(rawURL).Wait(ctx); err != nil {
		return nil, &FetchError{URL: rawURL, Err: eris.Wrap(err, "rate limiter wait")}
	}

	started := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	zap.L().Debug("fetched page",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes+1))

	if block := DetectBlock(resp, raw); block != BlockNone {
		return nil, &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Block:      block,
			Err:        eris.Errorf("blocked by %s", block),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        eris.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	if readErr != nil {
		return nil, &FetchError{URL: rawURL, Err: eris.Wrap(readErr, "read body")}
	}
	if int64(len(raw)) > f.opts.MaxBodyBytes {
		return nil, &FetchError{URL: rawURL, Err: eris.Errorf("body exceeds %d bytes", f.opts.MaxBodyBytes)}
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := DecodeBody(raw, contentType)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	return &Page{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}
