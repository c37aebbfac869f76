package polcat

import "strings"

// DocumentType labels the kind of instrument a document is.
type DocumentType string

// TypeUnknown is recorded when a document's type could not be determined.
const TypeUnknown DocumentType = "unknown"

// Document represents one policy instrument listed in the index.
type Document struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type DocumentType `json:"type"`

	// URL of the document's detail page. Empty when no document URL is
	// configured.
	URL string `json:"url"`
}

// DocumentFilter represents a filter for stored documents.
type DocumentFilter struct {
	Type *DocumentType
}

// NewDocument returns a validated document. An empty type is recorded
// as TypeUnknown.
func NewDocument(id, name string, typ DocumentType) (*Document, error) {
	if typ == "" {
		typ = TypeUnknown
	}
	doc := &Document{ID: id, Name: name, Type: typ}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.Name == "" {
		return Errorf(EINVALID, "document name required")
	}
	if d.Type == "" {
		return Errorf(EINVALID, "document type required")
	}
	return nil
}

// DefaultVocabulary is the set of document types published in the policy
// suite, in matching order.
var DefaultVocabulary = Vocabulary{"framework", "policy", "directive", "standard", "guideline"}

// Vocabulary is the closed, ordered set of known document types.
type Vocabulary []DocumentType

// ParseVocabulary builds a Vocabulary from raw labels. Labels are
// lower-cased; empty, duplicate and reserved labels are rejected.
func ParseVocabulary(labels []string) (Vocabulary, error) {
	if len(labels) == 0 {
		return nil, Errorf(EINVALID, "document type vocabulary is empty")
	}

	seen := make(map[DocumentType]bool, len(labels))
	vocab := make(Vocabulary, 0, len(labels))
	for _, label := range labels {
		t := DocumentType(strings.ToLower(strings.TrimSpace(label)))
		switch {
		case t == "":
			return nil, Errorf(EINVALID, "empty document type in vocabulary")
		case t == TypeUnknown:
			return nil, Errorf(EINVALID, "document type %q is reserved", t)
		case seen[t]:
			return nil, Errorf(EINVALID, "duplicate document type %q", t)
		}
		seen[t] = true
		vocab = append(vocab, t)
	}
	return vocab, nil
}

// Contains reports whether t is a member of the vocabulary.
func (v Vocabulary) Contains(t DocumentType) bool {
	for _, known := range v {
		if known == t {
			return true
		}
	}
	return false
}

// Infer guesses a document's type from its name. It returns the first type,
// in vocabulary order, that occurs anywhere in the name ignoring case, or
// TypeUnknown if none does.
func (v Vocabulary) Infer(name string) DocumentType {
	lower := strings.ToLower(name)
	for _, t := range v {
		if strings.Contains(lower, strings.ToLower(string(t))) {
			return t
		}
	}
	return TypeUnknown
}
