package mock

import (
	"context"

	"github.com/fwojciec/polcat"
)

var _ polcat.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of polcat.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ polcat.IndexFetcher = (*IndexFetcher)(nil)

// IndexFetcher is a mock implementation of polcat.IndexFetcher.
type IndexFetcher struct {
	FetchPartitionFn func(ctx context.Context, p polcat.Partition) ([]polcat.Link, error)
}

func (f *IndexFetcher) FetchPartition(ctx context.Context, p polcat.Partition) ([]polcat.Link, error) {
	return f.FetchPartitionFn(ctx, p)
}

var _ polcat.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of polcat.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ polcat.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of polcat.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}
