package mock

import "github.com/fwojciec/polcat"

var _ polcat.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of polcat.LinkSelector.
type LinkSelector struct {
	SelectLinksFn func(html string) ([]polcat.Link, error)
}

func (s *LinkSelector) SelectLinks(html string) ([]polcat.Link, error) {
	return s.SelectLinksFn(html)
}
