// internal/engine/dynamic/fetcher.go
package dynamic

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/fototeca/internal/engine"
	"github.com/law-makers/fototeca/internal/ratelimit"
	"github.com/law-makers/fototeca/internal/reqctx"
	"github.com/rs/zerolog"
)

// Options configures the headless browser
type Options struct {
	ChromePath string
	UserAgent  string
	Proxy      string
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// Fetcher renders pages in headless Chrome and returns the resulting DOM.
// The browser is started on first use and reused for every page until Close.
type Fetcher struct {
	opts    Options
	limiter ratelimit.Limiter

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Ensure Fetcher implements engine.Fetcher at compile time.
var _ engine.Fetcher = (*Fetcher)(nil)

// New creates a browser-backed Fetcher. No browser is launched until Fetch.
func New(lim ratelimit.Limiter, opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Fetcher{opts: opts, limiter: lim}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "BrowserFetcher"
}

func (f *Fetcher) browser() (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browserCtx != nil {
		return f.browserCtx, nil
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{},
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
	)
	if f.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(f.opts.UserAgent))
	}
	if path := FindChrome(f.opts.ChromePath, f.opts.Logger); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}
	if f.opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(f.opts.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	f.allocCancel = allocCancel
	f.browserCtx = browserCtx
	f.browserCancel = browserCancel
	f.opts.Logger.Debug().Msg("Headless browser started")
	return browserCtx, nil
}

// Fetch navigates to url in a fresh tab and returns the rendered outer HTML.
// A main document answering outside 2xx is a failure, like in the HTTP fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	rc := reqctx.FromContext(ctx)
	logger := f.opts.Logger.With().Str("request_id", rc.RequestID).Int("page", rc.Page).Str("url", url).Logger()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, url); err != nil {
			return "", engine.TransportError(url, err)
		}
	}

	browserCtx, err := f.browser()
	if err != nil {
		return "", engine.NewEngineError(engine.ErrCodeBrowserError, "failed to start browser", err)
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()
	tabCtx, cancel := context.WithTimeout(tabCtx, f.opts.Timeout)
	defer cancel()

	// propagate caller cancellation into the tab
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		statusMu   sync.Mutex
		status     int64
		statusText string
	)
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			statusMu.Lock()
			status, statusText = resp.Response.Status, resp.Response.StatusText
			statusMu.Unlock()
		}
	})

	var html string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", engine.TransportError(url, err)
	}

	statusMu.Lock()
	code, text := int(status), statusText
	statusMu.Unlock()
	if code != 0 && (code < 200 || code > 299) {
		return "", engine.StatusError(url, code, text)
	}

	logger.Debug().
		Int("status", code).
		Int("bytes", len(html)).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Dur("since_page_start", rc.Elapsed()).
		Msg("Browser fetch completed")

	return html, nil
}

// Close shuts the browser down if it was started
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browserCancel != nil {
		f.browserCancel()
		f.allocCancel()
		f.browserCtx, f.browserCancel, f.allocCancel = nil, nil, nil
	}
	return nil
}
