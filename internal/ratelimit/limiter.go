// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces outgoing requests.
type Limiter interface {
	// Wait blocks until a request to rawURL may be sent or ctx is done.
	Wait(ctx context.Context, rawURL string) error
}

// HostLimiter keeps one token bucket per host name.
type HostLimiter struct {
	every rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewHostLimiter allows rps requests per second to each host, with the given
// burst. rps <= 0 means unlimited.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	every := rate.Limit(rps)
	if rps <= 0 {
		every = rate.Inf
	}
	return &HostLimiter{
		every: every,
		burst: max(burst, 1),
		hosts: make(map[string]*rate.Limiter),
	}
}

func (h *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host := hostOf(rawURL)
	if host == "" {
		// the fetcher reports the bad URL
		return nil
	}
	return h.bucket(host).Wait(ctx)
}

func (h *HostLimiter) bucket(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.hosts[host]
	if !ok {
		b = rate.NewLimiter(h.every, h.burst)
		h.hosts[host] = b
	}
	return b
}

// hostOf returns the lower-cased host name of rawURL without the port.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
