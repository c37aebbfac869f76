package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/polcat"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

// maxRobotsSize bounds how much of a robots.txt file is read.
const maxRobotsSize = 1 << 20

// Ensure Robots implements polcat.RobotsPolicy at compile time.
var _ polcat.RobotsPolicy = (*Robots)(nil)

// allowAll is cached for hosts whose robots.txt could not be fetched.
var allowAll, _ = robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)

// Robots enforces robots.txt rules, fetching each host's file once. A host
// whose robots.txt cannot be fetched is allowed everything for the rest of
// the run.
type Robots struct {
	client    *http.Client
	userAgent string
	cache     sync.Map // host -> *robotstxt.RobotsData
	inflight  singleflight.Group
}

// NewRobots creates a robots.txt policy for the given user agent.
func NewRobots(userAgent string, timeout time.Duration) *Robots {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Robots{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Allowed reports whether rawURL, query included, may be fetched under
// its host's robots.txt.
func (r *Robots) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	group := r.rules(ctx, u).FindGroup(r.userAgent)
	if group == nil {
		return true
	}
	return group.Test(u.RequestURI())
}

func (r *Robots) rules(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	host := strings.ToLower(u.Host)
	if data, ok := r.cache.Load(host); ok {
		return data.(*robotstxt.RobotsData)
	}

	v, _, _ := r.inflight.Do(host, func() (any, error) {
		if data, ok := r.cache.Load(host); ok {
			return data, nil
		}
		data, err := r.load(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return allowAll, nil
			}
			data = allowAll
		}
		r.cache.Store(host, data)
		return data, nil
	})
	return v.(*robotstxt.RobotsData)
}

func (r *Robots) load(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, err
	}
	return robotstxt.FromStatusAndBytes(resp.StatusCode, body)
}
