// Package reqctx carries per-page request identity through the fetch path.
package reqctx

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type key int

const requestKey key = 0

// RequestContext identifies one page fetch
type RequestContext struct {
	RequestID string
	Page      int
	StartTime time.Time
}

// WithPage returns a child context tagged with a fresh request id for page
func WithPage(ctx context.Context, page int) context.Context {
	return context.WithValue(ctx, requestKey, &RequestContext{
		RequestID: uuid.NewString(),
		Page:      page,
		StartTime: time.Now(),
	})
}

// FromContext returns the request context, or a placeholder when none was attached
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestKey).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{
		RequestID: "unknown",
		StartTime: time.Now(),
	}
}

// Elapsed reports how long ago the request started
func (rc *RequestContext) Elapsed() time.Duration {
	return time.Since(rc.StartTime)
}
