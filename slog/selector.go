package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/polcat"
)

// Ensure LoggingLinkSelector implements polcat.LinkSelector.
var _ polcat.LinkSelector = (*LoggingLinkSelector)(nil)

// LoggingLinkSelector wraps a LinkSelector with debug logging.
type LoggingLinkSelector struct {
	next   polcat.LinkSelector
	logger *slog.Logger
}

// NewLoggingLinkSelector creates a new LoggingLinkSelector.
func NewLoggingLinkSelector(next polcat.LinkSelector, logger *slog.Logger) *LoggingLinkSelector {
	return &LoggingLinkSelector{next: next, logger: logger}
}

// SelectLinks delegates to the wrapped selector and logs the match count.
func (s *LoggingLinkSelector) SelectLinks(html string) (links []polcat.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("select links",
			"bytes", len(html),
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SelectLinks(html)
}
