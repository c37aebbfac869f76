package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/polcat"
)

// Ensure LoggingIndexFetcher implements polcat.IndexFetcher.
var _ polcat.IndexFetcher = (*LoggingIndexFetcher)(nil)

// LoggingIndexFetcher wraps an IndexFetcher, logging each partition query.
// Failed partitions are logged as warnings.
type LoggingIndexFetcher struct {
	next   polcat.IndexFetcher
	logger *slog.Logger
}

// NewLoggingIndexFetcher creates a new LoggingIndexFetcher.
func NewLoggingIndexFetcher(next polcat.IndexFetcher, logger *slog.Logger) *LoggingIndexFetcher {
	return &LoggingIndexFetcher{next: next, logger: logger}
}

// FetchPartition delegates to the wrapped fetcher and logs the result.
func (f *LoggingIndexFetcher) FetchPartition(ctx context.Context, p polcat.Partition) (links []polcat.Link, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("partition failed",
				"partition", p.String(),
				"duration", time.Since(begin),
				"code", polcat.ErrorCode(err),
				"err", polcat.ErrorMessage(err),
			)
			return
		}
		f.logger.Debug("partition",
			"partition", p.String(),
			"links", len(links),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.FetchPartition(ctx, p)
}
