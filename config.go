package polcat

import (
	"net/url"
	"regexp"
)

// Defaults for the Treasury Board policy suite.
const (
	DefaultIndexURL          = "https://www.tbs-sct.gc.ca/pol/index-eng.aspx"
	DefaultDocumentURL       = "https://www.tbs-sct.gc.ca/pol/doc-eng.aspx"
	DefaultAlphabeticalParam = "l"
	DefaultTypeParam         = "tree"
	DefaultLinkPattern       = `ctl00_CPHContent_index1_policytree1_listOfInstruments_ctl\d{2}_PolicyInstrument`
	DefaultEncoding          = "utf-8"
	DefaultOutput            = "tbs-policies.csv"
)

// Config holds the static settings of an enumeration run.
type Config struct {
	IndexURL          string
	DocumentURL       string
	AlphabeticalParam string
	TypeParam         string
	DocumentParam     string

	// LinkPattern matches the id attribute of document links. Matching is
	// case-insensitive and unanchored.
	LinkPattern string

	Types    []string
	Encoding string
	Output   string
}

// DefaultConfig returns the settings for the live policy suite.
func DefaultConfig() Config {
	types := make([]string, len(DefaultVocabulary))
	for i, t := range DefaultVocabulary {
		types[i] = string(t)
	}
	return Config{
		IndexURL:          DefaultIndexURL,
		DocumentURL:       DefaultDocumentURL,
		AlphabeticalParam: DefaultAlphabeticalParam,
		TypeParam:         DefaultTypeParam,
		DocumentParam:     DefaultDocumentParam,
		LinkPattern:       DefaultLinkPattern,
		Types:             types,
		Encoding:          DefaultEncoding,
		Output:            DefaultOutput,
	}
}

// Validate returns an EINVALID error if any setting is unusable.
func (c *Config) Validate() error {
	if err := validateURL("index URL", c.IndexURL); err != nil {
		return err
	}
	if c.DocumentURL != "" {
		if err := validateURL("document URL", c.DocumentURL); err != nil {
			return err
		}
	}
	if c.AlphabeticalParam == "" || c.TypeParam == "" {
		return Errorf(EINVALID, "index query parameters required")
	}
	if c.AlphabeticalParam == c.TypeParam {
		return Errorf(EINVALID, "index query parameters must differ, both are %q", c.TypeParam)
	}
	if c.DocumentParam == "" {
		return Errorf(EINVALID, "document ID parameter required")
	}
	if _, err := c.LinkRegexp(); err != nil {
		return err
	}
	if _, err := c.Vocabulary(); err != nil {
		return err
	}
	if c.Encoding == "" {
		return Errorf(EINVALID, "output encoding required")
	}
	if c.Output == "" {
		return Errorf(EINVALID, "output path required")
	}
	return nil
}

// LinkRegexp compiles LinkPattern.
func (c *Config) LinkRegexp() (*regexp.Regexp, error) {
	if c.LinkPattern == "" {
		return nil, Errorf(EINVALID, "document link pattern required")
	}
	re, err := regexp.Compile("(?i)" + c.LinkPattern)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid document link pattern %q: %v", c.LinkPattern, err)
	}
	return re, nil
}

// Vocabulary parses Types.
func (c *Config) Vocabulary() (Vocabulary, error) {
	return ParseVocabulary(c.Types)
}

func validateURL(what, raw string) error {
	if raw == "" {
		return Errorf(EINVALID, "%s required", what)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid %s %q: %v", what, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "%s %q must be http or https", what, raw)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "%s %q has no host", what, raw)
	}
	return nil
}
