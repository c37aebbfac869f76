package goquery_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure InstrumentSelector implements polcat.LinkSelector at compile time.
var _ polcat.LinkSelector = (*goquery.InstrumentSelector)(nil)

func newSelector(t *testing.T) *goquery.InstrumentSelector {
	t.Helper()

	cfg := polcat.DefaultConfig()
	re, err := cfg.LinkRegexp()
	require.NoError(t, err)
	return goquery.NewInstrumentSelector(re)
}

func TestInstrumentSelector_SelectLinks(t *testing.T) {
	t.Parallel()

	t.Run("selects links with matching ids and skips chrome", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav>
	<a id="ctl00_Nav_home" href="/pol/index-eng.aspx">Home</a>
	<a href="/pol/index-eng.aspx?l=B">B</a>
</nav>
<ul>
	<li><a id="ctl00_CPHContent_index1_policytree1_listOfInstruments_ctl00_PolicyInstrument" href="doc-eng.aspx?id=16578">Policy on Government Security</a></li>
	<li><a id="ctl00_CPHContent_index1_policytree1_listOfInstruments_ctl01_PolicyInstrument" href="doc-eng.aspx?id=25049">Values and Ethics Code for the Public Sector</a></li>
</ul>
</body>
</html>`

		links, err := newSelector(t).SelectLinks(html)

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "doc-eng.aspx?id=16578", links[0].Href)
		assert.Equal(t, "Policy on Government Security", links[0].Text)
		assert.Equal(t, "ctl00_CPHContent_index1_policytree1_listOfInstruments_ctl00_PolicyInstrument", links[0].ElementID)
		assert.Equal(t, "doc-eng.aspx?id=25049", links[1].Href)
	})

	t.Run("matches ids case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<a id="CTL00_CPHCONTENT_INDEX1_POLICYTREE1_LISTOFINSTRUMENTS_CTL03_POLICYINSTRUMENT" href="doc-eng.aspx?id=1">Policy on Results</a>`

		links, err := newSelector(t).SelectLinks(html)

		require.NoError(t, err)
		require.Len(t, links, 1)
	})

	t.Run("returns links without href unfiltered", func(t *testing.T) {
		t.Parallel()

		html := `<a id="ctl00_CPHContent_index1_policytree1_listOfInstruments_ctl04_PolicyInstrument">Orphan</a>`

		links, err := newSelector(t).SelectLinks(html)

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Empty(t, links[0].Href)
		assert.Equal(t, "Orphan", links[0].Text)
	})

	t.Run("returns empty result when nothing matches", func(t *testing.T) {
		t.Parallel()

		links, err := newSelector(t).SelectLinks(`<html><body><p>No instruments</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("uses custom pattern", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewInstrumentSelector(regexp.MustCompile(`^doc-\d+$`))
		html := `<a id="doc-1" href="?id=1">One</a><a id="doc-x" href="?id=2">Two</a>`

		links, err := s.SelectLinks(html)

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "One", links[0].Text)
	})
}
