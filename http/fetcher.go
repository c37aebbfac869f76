// Package http fetches index pages and robots.txt files over HTTP.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/polcat"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout bounds a single request.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to the index server.
const DefaultUserAgent = "polcat/1.0 (+https://github.com/fwojciec/polcat)"

// DefaultMaxBodySize caps the size of an index page.
const DefaultMaxBodySize = 8 << 20

var _ polcat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves index pages.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header. An empty value leaves Go's
// default in place.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher returns a Fetcher with its own HTTP client.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch returns the page at url decoded to UTF-8, using the declared or
// sniffed charset. Any failure, including a non-200 status or a body
// larger than the size cap, is an EFETCH error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", polcat.Errorf(polcat.EFETCH, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("Accept", "text/html")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", polcat.Errorf(polcat.EFETCH, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", polcat.Errorf(polcat.EFETCH, "HTTP %s for %s", resp.Status, url)
	}

	// One extra byte tells a page of exactly the cap from a larger one.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", polcat.Errorf(polcat.EFETCH, "read %s: %v", url, err)
	}
	if int64(len(raw)) > f.maxBodySize {
		return "", polcat.Errorf(polcat.EFETCH, "%s exceeds %d bytes", url, f.maxBodySize)
	}

	if len(raw) == 0 {
		return "", nil
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", polcat.Errorf(polcat.EFETCH, "decode %s: %v", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", polcat.Errorf(polcat.EFETCH, "decode %s: %v", url, err)
	}

	return string(body), nil
}

// Close drops idle keep-alive connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
