package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/polcat"
	"github.com/google/uuid"
)

var _ polcat.CatalogStager = (*CatalogStore)(nil)

// CatalogStore exports catalogs into the documents table. Each export
// replaces the table contents and records a row in the exports table.
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Export replaces the stored documents with the catalog in a single
// transaction. Any failure is an EIO error and leaves the previous
// contents in place.
func (s *CatalogStore) Export(ctx context.Context, catalog *polcat.Catalog) error {
	staged, err := s.Stage(ctx, catalog)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Stage writes the catalog inside a transaction that Commit commits and
// Abort rolls back. The database connection is held until then.
func (s *CatalogStore) Stage(ctx context.Context, catalog *polcat.Catalog) (polcat.StagedExport, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.exportError(ctx, err)
	}
	if err := s.write(ctx, tx, catalog); err != nil {
		_ = tx.Rollback()
		return nil, s.exportError(ctx, err)
	}
	return &stagedTx{tx: tx, path: s.db.path}, nil
}

func (s *CatalogStore) exportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return polcat.Errorf(polcat.EIO, "export catalog to %s: %v", s.db.path, err)
}

func (s *CatalogStore) write(ctx context.Context, tx *sql.Tx, catalog *polcat.Catalog) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, name, type, url)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	h := xxhash.New()
	for _, doc := range catalog.Documents() {
		if _, err := stmt.ExecContext(ctx, doc.ID, doc.Name, string(doc.Type), doc.URL); err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
		_, _ = fmt.Fprintf(h, "%s\x1f%s\x1f%s\x1e", doc.ID, doc.Name, doc.Type)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO exports (id, documents, content_hash, exported_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), catalog.Len(), fmt.Sprintf("%016x", h.Sum64()), time.Now().UTC().Format(time.RFC3339))
	return err
}

// stagedTx is an export transaction waiting to be committed.
type stagedTx struct {
	tx   *sql.Tx
	path string
}

func (s *stagedTx) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return polcat.Errorf(polcat.EIO, "commit catalog to %s: %v", s.path, err)
	}
	return nil
}

func (s *stagedTx) Abort() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return polcat.Errorf(polcat.EIO, "roll back catalog in %s: %v", s.path, err)
	}
	return nil
}

// FindDocuments returns the stored documents ordered by ID.
func (s *CatalogStore) FindDocuments(ctx context.Context, filter polcat.DocumentFilter) ([]*polcat.Document, error) {
	query := `SELECT id, name, type, url FROM documents`
	var args []any
	if filter.Type != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*filter.Type))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*polcat.Document
	for rows.Next() {
		var doc polcat.Document
		var typ string
		if err := rows.Scan(&doc.ID, &doc.Name, &typ, &doc.URL); err != nil {
			return nil, err
		}
		doc.Type = polcat.DocumentType(typ)
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// LastExport returns the most recent export record.
// Returns ENOTFOUND if nothing has been exported yet.
func (s *CatalogStore) LastExport(ctx context.Context) (*ExportRecord, error) {
	var e ExportRecord
	var exportedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, documents, content_hash, exported_at
		FROM exports
		ORDER BY exported_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&e.ID, &e.Documents, &e.ContentHash, &exportedAt)
	if err == sql.ErrNoRows {
		return nil, polcat.Errorf(polcat.ENOTFOUND, "no exports recorded")
	}
	if err != nil {
		return nil, err
	}
	e.ExportedAt, err = time.Parse(time.RFC3339, exportedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exported_at: %w", err)
	}
	return &e, nil
}

// ExportRecord describes one catalog export.
type ExportRecord struct {
	ID          string
	Documents   int
	ContentHash string
	ExportedAt  time.Time
}
