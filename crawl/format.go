package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/polcat"
)

// Digest fingerprints the catalog's contents. Two catalogs holding the same
// documents have the same digest regardless of how they were built.
func Digest(catalog *polcat.Catalog) string {
	h := xxhash.New()
	for _, doc := range catalog.Documents() {
		_, _ = h.WriteString(doc.ID)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(doc.Name)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(string(doc.Type))
		_, _ = h.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Plural formats a count with a singular or plural noun.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
