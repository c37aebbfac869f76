// Package fs writes catalogs to the local filesystem.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/csv"
)

var _ polcat.CatalogStager = (*CatalogFile)(nil)

// CatalogFile exports a catalog as a CSV file. The file is written to a
// temporary sibling and renamed into place, so an existing file is either
// fully replaced or left untouched.
type CatalogFile struct {
	Path string

	// Charset encodes the output. When nil the file is written as UTF-8.
	Charset polcat.Charset
}

// NewCatalogFile creates a new CatalogFile.
func NewCatalogFile(path string, charset polcat.Charset) *CatalogFile {
	return &CatalogFile{Path: path, Charset: charset}
}

// Export writes the catalog. Any filesystem failure is an EIO error.
func (f *CatalogFile) Export(ctx context.Context, catalog *polcat.Catalog) error {
	staged, err := f.Stage(ctx, catalog)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Stage writes the catalog to a temporary file next to Path. Commit
// renames it into place; Abort removes it.
func (f *CatalogFile) Stage(ctx context.Context, catalog *polcat.Catalog) (polcat.StagedExport, error) {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return nil, polcat.Errorf(polcat.EIO, "create %s: %v", f.Path, err)
	}
	staged := &stagedFile{tmp: tmp.Name(), path: f.Path}
	if err := f.write(ctx, tmp, catalog); err != nil {
		_ = tmp.Close()
		_ = staged.Abort()
		return nil, err
	}
	return staged, nil
}

func (f *CatalogFile) write(ctx context.Context, tmp *os.File, catalog *polcat.Catalog) error {
	var w io.Writer = tmp
	var enc io.WriteCloser
	if f.Charset != nil {
		enc = f.Charset.NewWriter(tmp)
		w = enc
	}

	if err := csv.NewEncoder(w).Encode(ctx, catalog); err != nil {
		if polcat.ErrorCode(err) == polcat.EIO {
			return polcat.Errorf(polcat.EIO, "write %s: %s", f.Path, polcat.ErrorMessage(err))
		}
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return polcat.Errorf(polcat.EIO, "encode %s: %v", f.Path, err)
		}
	}
	if err := tmp.Sync(); err != nil {
		return polcat.Errorf(polcat.EIO, "sync %s: %v", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return polcat.Errorf(polcat.EIO, "close %s: %v", f.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return polcat.Errorf(polcat.EIO, "chmod %s: %v", f.Path, err)
	}
	return nil
}

// stagedFile is a complete catalog file waiting to be renamed into place.
type stagedFile struct {
	tmp  string
	path string
}

func (s *stagedFile) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		_ = os.Remove(s.tmp)
		return polcat.Errorf(polcat.EIO, "rename %s: %v", s.path, err)
	}
	return nil
}

func (s *stagedFile) Abort() error {
	if err := os.Remove(s.tmp); err != nil && !os.IsNotExist(err) {
		return polcat.Errorf(polcat.EIO, "remove %s: %v", s.tmp, err)
	}
	return nil
}
