// Package encoding provides polcat.Charset implementations backed by
// golang.org/x/text. Encodings are looked up by their WHATWG names and
// labels, so "utf-8", "latin1" and "windows-1252" are all accepted.
package encoding

import (
	"io"
	"unicode/utf8"

	"github.com/fwojciec/polcat"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Ensure Charset implements polcat.Charset at compile time.
var _ polcat.Charset = (*Charset)(nil)

// Charset encodes catalog text into a named character encoding.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// NewCharset returns the charset for an encoding name or label.
// Returns EINVALID if the encoding is not known.
func NewCharset(name string) (*Charset, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, polcat.Errorf(polcat.EINVALID, "unsupported output encoding %q", name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	return &Charset{name: canonical, enc: enc}, nil
}

// Name returns the canonical encoding name.
func (c *Charset) Name() string {
	return c.name
}

// Check returns EENCODING if s is not valid UTF-8 or contains a rune the
// encoding cannot represent.
func (c *Charset) Check(s string) error {
	if !utf8.ValidString(s) {
		return polcat.Errorf(polcat.EENCODING, "%q is not valid UTF-8", s)
	}
	if _, err := c.enc.NewEncoder().String(s); err != nil {
		return polcat.Errorf(polcat.EENCODING, "%q cannot be represented in %s: %v", s, c.name, err)
	}
	return nil
}

// NewWriter returns a writer that encodes into w.
func (c *Charset) NewWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, c.enc.NewEncoder())
}
