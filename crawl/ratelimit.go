package crawl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/polcat"
	"golang.org/x/time/rate"
)

var _ polcat.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each host. Hosts are limited
// independently, each with a burst of one request. Host names are
// compared case-insensitively.
type DomainLimiter struct {
	limit rate.Limit
	hosts sync.Map // host -> *rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		return &DomainLimiter{limit: rate.Inf}
	}
	return &DomainLimiter{limit: rate.Limit(rps)}
}

// Interval is the minimum spacing between two requests to one host.
// Zero when limiting is disabled.
func (d *DomainLimiter) Interval() time.Duration {
	if d.limit == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(d.limit))
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	v, _ := d.hosts.LoadOrStore(strings.ToLower(host), rate.NewLimiter(d.limit, 1))
	return v.(*rate.Limiter).Wait(ctx)
}
