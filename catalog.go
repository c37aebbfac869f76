package polcat

import (
	"context"
	"sort"
)

// Catalog is the deduplicated set of documents discovered during a run,
// keyed by document ID.
type Catalog struct {
	docs map[string]*Document
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{docs: make(map[string]*Document)}
}

// Merge stores each document under its ID. A later document replaces an
// earlier one with the same ID.
func (c *Catalog) Merge(docs ...*Document) {
	for _, doc := range docs {
		c.docs[doc.ID] = doc
	}
}

// Get returns the document with the given ID.
func (c *Catalog) Get(id string) (*Document, bool) {
	doc, ok := c.docs[id]
	return doc, ok
}

// Len returns the number of documents in the catalog.
func (c *Catalog) Len() int {
	return len(c.docs)
}

// Documents returns all documents sorted by ID.
func (c *Catalog) Documents() []*Document {
	docs := make([]*Document, 0, len(c.docs))
	for _, doc := range c.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs
}

// CatalogExporter writes a finished catalog to its destination.
type CatalogExporter interface {
	// Export writes every document of the catalog.
	// Returns EIO if the destination cannot be written.
	Export(ctx context.Context, catalog *Catalog) error
}

// StagedExport is an export that has been written but not yet published.
type StagedExport interface {
	// Commit publishes the export. Returns EIO on failure.
	Commit() error

	// Abort discards the export, leaving the destination untouched.
	Abort() error
}

// CatalogStager is a CatalogExporter that can write a catalog without
// publishing it.
type CatalogStager interface {
	CatalogExporter
	Stage(ctx context.Context, catalog *Catalog) (StagedExport, error)
}

// MultiExporter exports a catalog to several destinations. Destinations
// implementing CatalogStager are staged first and committed only once
// every destination has been written, so a failure leaves every staged
// destination untouched. Other destinations are exported in order after
// staging.
type MultiExporter []CatalogExporter

// Export implements CatalogExporter.
func (m MultiExporter) Export(ctx context.Context, catalog *Catalog) error {
	var staged []StagedExport
	abort := func(exports []StagedExport) {
		for i := len(exports) - 1; i >= 0; i-- {
			_ = exports[i].Abort()
		}
	}

	var plain []CatalogExporter
	for _, e := range m {
		stager, ok := e.(CatalogStager)
		if !ok {
			plain = append(plain, e)
			continue
		}
		s, err := stager.Stage(ctx, catalog)
		if err != nil {
			abort(staged)
			return err
		}
		staged = append(staged, s)
	}

	for _, e := range plain {
		if err := e.Export(ctx, catalog); err != nil {
			abort(staged)
			return err
		}
	}

	for i, s := range staged {
		if err := s.Commit(); err != nil {
			abort(staged[i+1:])
			return err
		}
	}
	return nil
}
