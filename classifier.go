package polcat

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// DefaultDocumentParam is the query parameter holding a document's ID.
const DefaultDocumentParam = "id"

// Classifier turns candidate links into documents. It performs no I/O.
type Classifier struct {
	// Param is the href query parameter holding the document ID.
	// Defaults to DefaultDocumentParam.
	Param string

	// Vocabulary is used to infer a type when the link's partition does
	// not determine it.
	Vocabulary Vocabulary

	// Charset the document name must be representable in. When nil the
	// name only has to be valid UTF-8.
	Charset Charset

	// DocumentURL is the detail page URL. When set, each document gets a
	// URL pointing at its detail page.
	DocumentURL string
}

// Classify derives a document from a link. A non-empty schemeType is
// authoritative and used as is; otherwise the type is inferred from the
// document name.
//
// Returns EMALFORMED if the link has no document ID or no text and
// EENCODING if the text cannot be represented in the output charset.
func (c *Classifier) Classify(link Link, schemeType DocumentType) (*Document, error) {
	id, err := c.documentID(link.Href)
	if err != nil {
		return nil, err
	}

	name := strings.Join(strings.Fields(link.Text), " ")
	if name == "" {
		return nil, Errorf(EMALFORMED, "link to document %q has no text", id)
	}
	if err := c.checkName(name); err != nil {
		return nil, err
	}

	typ := schemeType
	if typ == "" {
		typ = c.Vocabulary.Infer(name)
	}

	doc, err := NewDocument(id, name, typ)
	if err != nil {
		return nil, err
	}
	doc.URL = c.documentURL(id)
	return doc, nil
}

func (c *Classifier) param() string {
	if c.Param == "" {
		return DefaultDocumentParam
	}
	return c.Param
}

func (c *Classifier) documentID(href string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EMALFORMED, "invalid link href %q: %v", href, err)
	}
	id := strings.TrimSpace(u.Query().Get(c.param()))
	if id == "" {
		return "", Errorf(EMALFORMED, "link href %q has no %q parameter", href, c.param())
	}
	return id, nil
}

func (c *Classifier) checkName(name string) error {
	if c.Charset != nil {
		return c.Charset.Check(name)
	}
	if !utf8.ValidString(name) {
		return Errorf(EENCODING, "document name %q is not valid UTF-8", name)
	}
	return nil
}

func (c *Classifier) documentURL(id string) string {
	if c.DocumentURL == "" {
		return ""
	}
	u, err := url.Parse(c.DocumentURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set(c.param(), id)
	u.RawQuery = q.Encode()
	return u.String()
}
