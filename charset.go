package polcat

import "io"

// Charset is the character encoding the catalog is written in.
type Charset interface {
	// Name returns the canonical encoding name.
	Name() string

	// Check returns an EENCODING error if s cannot be represented.
	Check(s string) error

	// NewWriter returns a writer that encodes UTF-8 text written to it
	// into w. Close flushes buffered output but does not close w.
	NewWriter(w io.Writer) io.WriteCloser
}
