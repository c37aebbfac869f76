package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/crawl"
	polhttp "github.com/fwojciec/polcat/http"
	"github.com/fwojciec/polcat/prometheus"
	"github.com/fwojciec/polcat/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Fetcher    polcat.Fetcher
	Enumerator *crawl.Enumerator
	Exporter   polcat.CatalogExporter
	Metrics    *prometheus.Metrics
	Catalogs   *sqlite.CatalogStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Read flag values from a YAML file. Explicit flags take precedence."`
	Verbose bool            `short:"v" help:"Log every request at debug level"`

	Crawl CrawlCmd `cmd:"" help:"Enumerate the policy suite index and export the catalog"`
	List  ListCmd  `cmd:"" help:"List documents stored in a SQLite catalog"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Output      string        `short:"o" default:"${output}" help:"CSV output path"`
	Encoding    string        `default:"${encoding}" help:"Output character encoding"`
	IndexURL    string        `name:"index-url" default:"${index_url}" help:"Policy suite index page"`
	DocURL      string        `name:"doc-url" default:"${doc_url}" help:"Document detail page, empty to omit URLs"`
	Types       []string      `default:"${types}" help:"Document types, in inference priority order"`
	LinkPattern string        `name:"link-pattern" default:"${link_pattern}" help:"Pattern matching the id attribute of document links"`
	DocParam    string        `name:"doc-param" default:"${doc_param}" help:"Link query parameter holding the document ID"`
	AlphaParam  string        `name:"alpha-param" default:"${alpha_param}" help:"Index query parameter selecting a letter"`
	TypeParam   string        `name:"type-param" default:"${type_param}" help:"Index query parameter selecting a type"`
	Timeout     time.Duration `default:"${timeout}" help:"Per-request timeout"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per host, 0 for unlimited"`
	Retries     int           `default:"3" help:"Retries per partition request"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent partition fetches within a phase"`
	UserAgent   string        `name:"user-agent" default:"${user_agent}" help:"User-Agent header"`
	SQLite      string        `name:"sqlite" type:"path" help:"Also store the catalog in this SQLite database"`
	Robots      bool          `help:"Skip partitions disallowed by the index host's robots.txt"`
	MetricsFile string        `name:"metrics-file" type:"path" help:"Write Prometheus metrics to this file after the run"`
}

// Config returns the static settings named by the flags.
func (c *CrawlCmd) Config() polcat.Config {
	return polcat.Config{
		IndexURL:          c.IndexURL,
		DocumentURL:       c.DocURL,
		AlphabeticalParam: c.AlphaParam,
		TypeParam:         c.TypeParam,
		DocumentParam:     c.DocParam,
		LinkPattern:       c.LinkPattern,
		Types:             c.Types,
		Encoding:          c.Encoding,
		Output:            c.Output,
	}
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	SQLite string `name:"sqlite" required:"" type:"existingfile" help:"SQLite catalog database"`
	Type   string `short:"t" help:"Only list documents of this type"`
}

func defaultVars() kong.Vars {
	cfg := polcat.DefaultConfig()
	return kong.Vars{
		"output":       cfg.Output,
		"encoding":     cfg.Encoding,
		"index_url":    cfg.IndexURL,
		"doc_url":      cfg.DocumentURL,
		"types":        strings.Join(cfg.Types, ","),
		"link_pattern": cfg.LinkPattern,
		"doc_param":    cfg.DocumentParam,
		"alpha_param":  cfg.AlphabeticalParam,
		"type_param":   cfg.TypeParam,
		"timeout":      polhttp.DefaultFetchTimeout.String(),
		"user_agent":   polhttp.DefaultUserAgent,
	}
}
