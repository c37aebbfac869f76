package polcat

// Link is a candidate document link found on an index page.
type Link struct {
	// ElementID is the id attribute that marked the element as a document link.
	ElementID string
	Href      string
	Text      string
}

// LinkSelector extracts candidate document links from an index page.
type LinkSelector interface {
	// SelectLinks parses HTML and returns every element whose id matches
	// the document link pattern, in document order. Links are not
	// validated; that is left to the Classifier.
	SelectLinks(html string) ([]Link, error)
}
