// Package proxy rotates outgoing requests across configured proxies.
package proxy

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultCooldown is how long a proxy that failed a request is passed over.
const DefaultCooldown = 5 * time.Minute

// Pool hands out proxies round-robin, skipping the ones cooling down after
// a failure. A nil *Pool is an empty pool.
type Pool struct {
	Cooldown time.Duration

	mu      sync.Mutex
	proxies []string
	next    int
	benched map[string]time.Time // proxy -> when it may be used again
	now     func() time.Time
}

// New returns a pool over proxies.
func New(proxies []string) *Pool {
	return &Pool{
		Cooldown: DefaultCooldown,
		proxies:  append([]string(nil), proxies...),
		benched:  make(map[string]time.Time),
		now:      time.Now,
	}
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// Next returns the proxy for the next request, or "" without proxies.
// When every proxy is benched the rotation continues regardless.
func (p *Pool) Next() string {
	if p.Len() == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for range p.proxies {
		candidate := p.advance()
		until, benched := p.benched[candidate]
		if !benched || !now.Before(until) {
			delete(p.benched, candidate)
			return candidate
		}
	}
	return p.advance()
}

func (p *Pool) advance() string {
	candidate := p.proxies[p.next]
	p.next = (p.next + 1) % len(p.proxies)
	return candidate
}

// Fail benches proxyURL for the pool's cooldown.
func (p *Pool) Fail(proxyURL string) {
	if p == nil || proxyURL == "" {
		return
	}
	p.mu.Lock()
	p.benched[proxyURL] = p.now().Add(p.Cooldown)
	p.mu.Unlock()
}

// Recover puts proxyURL back into rotation.
func (p *Pool) Recover(proxyURL string) {
	if p == nil || proxyURL == "" {
		return
	}
	p.mu.Lock()
	delete(p.benched, proxyURL)
	p.mu.Unlock()
}

type ctxKey struct{}

// WithProxy pins the proxy a request should use.
func WithProxy(ctx context.Context, proxyURL string) context.Context {
	if proxyURL == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, proxyURL)
}

// FromRequest is an http.Transport Proxy func honoring the proxy pinned by
// WithProxy. Unpinned requests use the environment settings.
func FromRequest(req *http.Request) (*url.URL, error) {
	if pinned, ok := req.Context().Value(ctxKey{}).(string); ok {
		return url.Parse(pinned)
	}
	return http.ProxyFromEnvironment(req)
}
