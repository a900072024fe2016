package engine

import "context"

// Fetcher is the interface that every page transport must implement
type Fetcher interface {
	// Fetch retrieves the markup at url. Any failure is reported as an
	// error satisfying errors.Is(err, ErrFetchFailed).
	Fetch(ctx context.Context, url string) (string, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
