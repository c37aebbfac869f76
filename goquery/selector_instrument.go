// Package goquery provides HTML link selection for the policy suite index
// using github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/polcat"
)

// Ensure InstrumentSelector implements polcat.LinkSelector at compile time.
var _ polcat.LinkSelector = (*InstrumentSelector)(nil)

// InstrumentSelector selects policy instrument links by their id attribute.
// The index marks every document link with a generated id, which is how
// real entries are told apart from navigation chrome.
type InstrumentSelector struct {
	pattern *regexp.Regexp
}

// NewInstrumentSelector creates a selector matching element ids against pattern.
func NewInstrumentSelector(pattern *regexp.Regexp) *InstrumentSelector {
	return &InstrumentSelector{pattern: pattern}
}

// SelectLinks parses HTML and returns every element with a matching id.
func (s *InstrumentSelector) SelectLinks(html string) ([]polcat.Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, polcat.Errorf(polcat.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []polcat.Link
	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		if !s.pattern.MatchString(id) {
			return
		}
		href, _ := sel.Attr("href")
		links = append(links, polcat.Link{
			ElementID: id,
			Href:      href,
			Text:      sel.Text(),
		})
	})

	return links, nil
}
