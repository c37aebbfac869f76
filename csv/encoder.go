// Package csv encodes catalogs as comma-separated values.
//
// Every field, the header included, is enclosed in double quotes and
// embedded quotes are doubled. Records end with CRLF.
package csv

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/fwojciec/polcat"
)

// Header is the column row written before any record.
var Header = []string{"ID", "Name", "Type"}

// Encoder writes catalogs to an io.Writer.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes the header followed by one record per document in ID
// order. An empty catalog produces the header only.
func (e *Encoder) Encode(ctx context.Context, catalog *polcat.Catalog) error {
	if err := e.writeRecord(Header); err != nil {
		return err
	}
	for _, doc := range catalog.Documents() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.writeRecord([]string{doc.ID, doc.Name, string(doc.Type)}); err != nil {
			return err
		}
	}
	if err := e.w.Flush(); err != nil {
		return polcat.Errorf(polcat.EIO, "write catalog: %v", err)
	}
	return nil
}

func (e *Encoder) writeRecord(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := e.w.WriteByte(','); err != nil {
				return polcat.Errorf(polcat.EIO, "write catalog: %v", err)
			}
		}
		if _, err := e.w.WriteString(quote(field)); err != nil {
			return polcat.Errorf(polcat.EIO, "write catalog: %v", err)
		}
	}
	if _, err := e.w.WriteString("\r\n"); err != nil {
		return polcat.Errorf(polcat.EIO, "write catalog: %v", err)
	}
	return nil
}

// quote wraps field in double quotes, doubling any quote inside it.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
