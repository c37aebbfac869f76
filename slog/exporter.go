package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/polcat"
)

var _ polcat.CatalogStager = (*LoggingExporter)(nil)

// LoggingExporter wraps a CatalogExporter with logging. Name identifies the
// destination in log lines, typically a file path.
type LoggingExporter struct {
	next   polcat.CatalogExporter
	name   string
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next polcat.CatalogExporter, name string, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, name: name, logger: logger}
}

// Export delegates to the wrapped exporter and logs the outcome.
func (e *LoggingExporter) Export(ctx context.Context, catalog *polcat.Catalog) (err error) {
	defer func(begin time.Time) {
		e.log(ctx, "export", catalog, begin, err)
	}(time.Now())
	return e.next.Export(ctx, catalog)
}

// Stage stages the export when the wrapped exporter supports it. Otherwise
// it exports right away and the returned StagedExport does nothing.
func (e *LoggingExporter) Stage(ctx context.Context, catalog *polcat.Catalog) (polcat.StagedExport, error) {
	stager, ok := e.next.(polcat.CatalogStager)
	if !ok {
		if err := e.Export(ctx, catalog); err != nil {
			return nil, err
		}
		return exported{}, nil
	}

	begin := time.Now()
	staged, err := stager.Stage(ctx, catalog)
	if err != nil {
		e.log(ctx, "export", catalog, begin, err)
		return nil, err
	}
	return &loggingStagedExport{next: staged, exporter: e, ctx: ctx, catalog: catalog, begin: begin}, nil
}

func (e *LoggingExporter) log(ctx context.Context, msg string, catalog *polcat.Catalog, begin time.Time, err error) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	e.logger.Log(ctx, level, msg,
		"destination", e.name,
		"documents", catalog.Len(),
		"duration", time.Since(begin),
		"err", err,
	)
}

type loggingStagedExport struct {
	next     polcat.StagedExport
	exporter *LoggingExporter
	ctx      context.Context
	catalog  *polcat.Catalog
	begin    time.Time
}

func (s *loggingStagedExport) Commit() error {
	err := s.next.Commit()
	s.exporter.log(s.ctx, "export", s.catalog, s.begin, err)
	return err
}

func (s *loggingStagedExport) Abort() error {
	err := s.next.Abort()
	s.exporter.logger.Warn("export aborted", "destination", s.exporter.name, "err", err)
	return err
}

// exported stands in for an export that has already been published.
type exported struct{}

func (exported) Commit() error { return nil }
func (exported) Abort() error  { return nil }
