package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/polcat"
)

// Ensure Index implements polcat.IndexFetcher at compile time.
var _ polcat.IndexFetcher = (*Index)(nil)

// Index fetches partitions of the policy suite index.
type Index struct {
	// URL of the index page. Existing query parameters are preserved.
	URL string

	// Query parameter names per scheme. Default to "l" and "tree".
	AlphabeticalParam string
	TypeParam         string

	Fetcher     polcat.Fetcher
	Selector    polcat.LinkSelector
	RateLimiter polcat.DomainLimiter

	// Robots, when set, is consulted before every partition request.
	Robots polcat.RobotsPolicy

	// RetryDelays are waited between attempts. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
	OnRetry     RetryFunc
}

// PartitionURL returns the index query URL for a partition.
func (ix *Index) PartitionURL(p polcat.Partition) (string, error) {
	u, err := url.Parse(ix.URL)
	if err != nil {
		return "", polcat.Errorf(polcat.EINVALID, "invalid index URL %q: %v", ix.URL, err)
	}

	param, err := ix.param(p.Scheme)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(param, p.Subset)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPartition retrieves the partition's index page and returns its
// candidate document links. Every failure, including timeouts and
// non-success statuses, is an EFETCH error naming the partition.
func (ix *Index) FetchPartition(ctx context.Context, p polcat.Partition) ([]polcat.Link, error) {
	rawURL, err := ix.PartitionURL(p)
	if err != nil {
		return nil, polcat.Errorf(polcat.EFETCH, "partition %s: %s", p, polcat.ErrorMessage(err))
	}

	if ix.Robots != nil && !ix.Robots.Allowed(ctx, rawURL) {
		return nil, polcat.Errorf(polcat.EFETCH, "partition %s: %s disallowed by robots.txt", p, rawURL)
	}

	if ix.RateLimiter != nil {
		u, _ := url.Parse(rawURL)
		if err := ix.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := ix.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, rawURL, ix.Fetcher.Fetch, delays, ix.OnRetry)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, polcat.Errorf(polcat.EFETCH, "partition %s: %s", p, polcat.ErrorMessage(err))
	}

	links, err := ix.Selector.SelectLinks(html)
	if err != nil {
		return nil, polcat.Errorf(polcat.EFETCH, "partition %s: %s", p, polcat.ErrorMessage(err))
	}
	return links, nil
}

func (ix *Index) param(s polcat.Scheme) (string, error) {
	switch s {
	case polcat.SchemeAlphabetical:
		if ix.AlphabeticalParam == "" {
			return polcat.DefaultAlphabeticalParam, nil
		}
		return ix.AlphabeticalParam, nil
	case polcat.SchemeType:
		if ix.TypeParam == "" {
			return polcat.DefaultTypeParam, nil
		}
		return ix.TypeParam, nil
	default:
		return "", polcat.Errorf(polcat.EINVALID, "unknown index scheme %q", s)
	}
}
