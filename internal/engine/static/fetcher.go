// internal/engine/static/fetcher.go
package static

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/law-makers/fototeca/internal/engine"
	"github.com/law-makers/fototeca/internal/proxy"
	"github.com/law-makers/fototeca/internal/ratelimit"
	"github.com/law-makers/fototeca/internal/reqctx"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Fototeca/1.0 (https://github.com/law-makers/fototeca)"

// Options configures a Fetcher
type Options struct {
	UserAgent string
	Headers   http.Header
	Proxies   *proxy.Pool
	Logger    zerolog.Logger
}

// Fetcher retrieves result pages with plain HTTP GET requests
type Fetcher struct {
	client  *http.Client
	limiter ratelimit.Limiter
	opts    Options
}

// Ensure Fetcher implements engine.Fetcher at compile time.
var _ engine.Fetcher = (*Fetcher)(nil)

// New creates a new Fetcher with dependency injection. A nil limiter disables pacing.
func New(client *http.Client, lim ratelimit.Limiter, opts Options) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:  client,
		limiter: lim,
		opts:    opts,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch performs one GET and returns the decoded body. Redirects are followed;
// anything that does not end in a 2xx response is a failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	rc := reqctx.FromContext(ctx)
	logger := f.opts.Logger.With().
		Str("request_id", rc.RequestID).
		Int("page", rc.Page).
		Str("url", url).
		Logger()

	logger.Debug().Str("fetcher", f.Name()).Msg("Starting fetch")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, url); err != nil {
			return "", engine.TransportError(url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", engine.NewEngineError(engine.ErrCodeInvalidURL, "failed to create request", err).
			WithDetail("url", url)
	}

	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "it-IT,it;q=0.9,en;q=0.8")
	for key, values := range f.opts.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	proxyURL := f.opts.Proxies.Next()
	if proxyURL != "" {
		req = req.WithContext(proxy.WithProxy(req.Context(), proxyURL))
		logger.Debug().Str("proxy", proxyURL).Msg("Using proxy")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.opts.Proxies.Fail(proxyURL)
		return "", engine.TransportError(url, err)
	}
	defer resp.Body.Close()
	f.opts.Proxies.Recover(proxyURL)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", engine.StatusError(url, resp.StatusCode, resp.Status)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", engine.NewEngineError(engine.ErrCodeReadError, "failed to read response body", err).
			WithDetail("url", url)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Dur("since_page_start", rc.Elapsed()).
		Msg("Fetch completed")

	return body, nil
}

// decodeBody converts the body to UTF-8 using the charset the server declared
// or, failing that, the one sniffed from the markup.
func decodeBody(resp *http.Response) (string, error) {
	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
