package crawl_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/crawl"
	"github.com/fwojciec/polcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_PartitionURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		index     crawl.Index
		partition polcat.Partition
		want      string
	}{
		{
			name:      "alphabetical partition uses l parameter",
			index:     crawl.Index{URL: polcat.DefaultIndexURL},
			partition: polcat.Partition{Scheme: polcat.SchemeAlphabetical, Subset: "Q"},
			want:      "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?l=Q",
		},
		{
			name:      "type partition uses tree parameter",
			index:     crawl.Index{URL: polcat.DefaultIndexURL},
			partition: polcat.Partition{Scheme: polcat.SchemeType, Subset: "directive"},
			want:      "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?tree=directive",
		},
		{
			name:      "custom parameter names",
			index:     crawl.Index{URL: polcat.DefaultIndexURL, AlphabeticalParam: "letter", TypeParam: "kind"},
			partition: polcat.Partition{Scheme: polcat.SchemeType, Subset: "policy"},
			want:      "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?kind=policy",
		},
		{
			name:      "existing query parameters are preserved",
			index:     crawl.Index{URL: "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?lang=en"},
			partition: polcat.Partition{Scheme: polcat.SchemeAlphabetical, Subset: "1"},
			want:      "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?l=1&lang=en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.index.PartitionURL(tt.partition)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown scheme is invalid", func(t *testing.T) {
		t.Parallel()

		ix := crawl.Index{URL: polcat.DefaultIndexURL}
		_, err := ix.PartitionURL(polcat.Partition{Scheme: "size", Subset: "large"})

		assert.Equal(t, polcat.EINVALID, polcat.ErrorCode(err))
	})
}

func TestIndex_FetchPartition(t *testing.T) {
	t.Parallel()

	partition := polcat.Partition{Scheme: polcat.SchemeAlphabetical, Subset: "P"}

	t.Run("fetches partition page and selects links", func(t *testing.T) {
		t.Parallel()

		var fetched string
		want := []polcat.Link{{ElementID: "x", Href: "doc-eng.aspx?id=1", Text: "Policy on Results"}}
		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetched = url
					return "<html>index</html>", nil
				},
			},
			Selector: &mock.LinkSelector{
				SelectLinksFn: func(html string) ([]polcat.Link, error) {
					assert.Equal(t, "<html>index</html>", html)
					return want, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		links, err := ix.FetchPartition(context.Background(), partition)

		require.NoError(t, err)
		assert.Equal(t, want, links)
		assert.Equal(t, "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?l=P", fetched)
	})

	t.Run("waits on rate limiter for index host", func(t *testing.T) {
		t.Parallel()

		var domain string
		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "", nil },
			},
			Selector: &mock.LinkSelector{
				SelectLinksFn: func(string) ([]polcat.Link, error) { return nil, nil },
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, d string) error {
					domain = d
					return nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := ix.FetchPartition(context.Background(), partition)

		require.NoError(t, err)
		assert.Equal(t, "www.tbs-sct.gc.ca", domain)
	})

	t.Run("wraps fetch failure as EFETCH naming partition", func(t *testing.T) {
		t.Parallel()

		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, u string) (string, error) {
					return "", polcat.Errorf(polcat.EFETCH, "HTTP 500 for %s", u)
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := ix.FetchPartition(context.Background(), partition)

		require.Error(t, err)
		assert.Equal(t, polcat.EFETCH, polcat.ErrorCode(err))
		assert.Contains(t, polcat.ErrorMessage(err), "alphabetical:P")
		assert.Contains(t, polcat.ErrorMessage(err), "HTTP 500")
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var retried []int
		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					calls++
					if calls < 3 {
						return "", errors.New("connection reset")
					}
					return "<html></html>", nil
				},
			},
			Selector: &mock.LinkSelector{
				SelectLinksFn: func(string) ([]polcat.Link, error) { return nil, nil },
			},
			RetryDelays: []time.Duration{0, 0, 0},
			OnRetry: func(_ string, attempt int, _ time.Duration, _ error) {
				retried = append(retried, attempt)
			},
		}

		_, err := ix.FetchPartition(context.Background(), partition)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{2, 3}, retried)
	})

	t.Run("refuses partition disallowed by robots.txt", func(t *testing.T) {
		t.Parallel()

		fetched := false
		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					fetched = true
					return "", nil
				},
			},
			Robots: &mock.RobotsPolicy{
				AllowedFn: func(_ context.Context, u string) bool {
					return u != "https://www.tbs-sct.gc.ca/pol/index-eng.aspx?l=P"
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := ix.FetchPartition(context.Background(), partition)

		assert.Equal(t, polcat.EFETCH, polcat.ErrorCode(err))
		assert.Contains(t, polcat.ErrorMessage(err), "robots.txt")
		assert.False(t, fetched)
	})

	t.Run("selector failure is EFETCH", func(t *testing.T) {
		t.Parallel()

		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "<html", nil },
			},
			Selector: &mock.LinkSelector{
				SelectLinksFn: func(string) ([]polcat.Link, error) {
					return nil, polcat.Errorf(polcat.EINVALID, "unparseable")
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := ix.FetchPartition(context.Background(), partition)

		assert.Equal(t, polcat.EFETCH, polcat.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ix := &crawl.Index{
			URL: polcat.DefaultIndexURL,
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, u string) (string, error) {
					return "", &url.Error{Op: "Get", URL: u, Err: ctx.Err()}
				},
			},
			RetryDelays: []time.Duration{time.Hour},
		}

		_, err := ix.FetchPartition(ctx, partition)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
