package polcat

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body as UTF-8.
	// A non-success status is returned as an EFETCH error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// IndexFetcher retrieves the candidate document links of one index partition.
type IndexFetcher interface {
	// FetchPartition queries the index for the partition.
	// Any failure is returned as an EFETCH error naming the partition.
	FetchPartition(ctx context.Context, p Partition) ([]Link, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// RobotsPolicy decides whether the crawler may fetch a URL.
type RobotsPolicy interface {
	// Allowed reports whether url may be fetched. A robots.txt that cannot
	// be retrieved allows everything.
	Allowed(ctx context.Context, url string) bool
}
