package mock

import (
	"context"
	"io"

	"github.com/fwojciec/polcat"
)

var _ polcat.CatalogExporter = (*CatalogExporter)(nil)

// CatalogExporter is a mock implementation of polcat.CatalogExporter.
type CatalogExporter struct {
	ExportFn func(ctx context.Context, catalog *polcat.Catalog) error
}

func (e *CatalogExporter) Export(ctx context.Context, catalog *polcat.Catalog) error {
	return e.ExportFn(ctx, catalog)
}

var _ polcat.CatalogStager = (*CatalogStager)(nil)

// CatalogStager is a mock implementation of polcat.CatalogStager.
type CatalogStager struct {
	ExportFn func(ctx context.Context, catalog *polcat.Catalog) error
	StageFn  func(ctx context.Context, catalog *polcat.Catalog) (polcat.StagedExport, error)
}

func (s *CatalogStager) Export(ctx context.Context, catalog *polcat.Catalog) error {
	return s.ExportFn(ctx, catalog)
}

func (s *CatalogStager) Stage(ctx context.Context, catalog *polcat.Catalog) (polcat.StagedExport, error) {
	return s.StageFn(ctx, catalog)
}

var _ polcat.StagedExport = (*StagedExport)(nil)

// StagedExport is a mock implementation of polcat.StagedExport.
type StagedExport struct {
	CommitFn func() error
	AbortFn  func() error
}

func (s *StagedExport) Commit() error {
	return s.CommitFn()
}

func (s *StagedExport) Abort() error {
	return s.AbortFn()
}

var _ polcat.Charset = (*Charset)(nil)

// Charset is a mock implementation of polcat.Charset.
type Charset struct {
	NameFn      func() string
	CheckFn     func(s string) error
	NewWriterFn func(w io.Writer) io.WriteCloser
}

func (c *Charset) Name() string {
	return c.NameFn()
}

func (c *Charset) Check(s string) error {
	return c.CheckFn(s)
}

func (c *Charset) NewWriter(w io.Writer) io.WriteCloser {
	return c.NewWriterFn(w)
}
