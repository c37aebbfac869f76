package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	begin := time.Now()

	progress := func(event crawl.ProgressEvent) {
		if deps.Metrics != nil {
			deps.Metrics.Observe(event)
		}
		switch event.Type {
		case crawl.ProgressLinkSkipped:
			deps.Logger.Warn("link skipped",
				"partition", event.Partition.String(),
				"href", event.Link.Href,
				"code", polcat.ErrorCode(event.Error),
				"err", polcat.ErrorMessage(event.Error),
			)
		case crawl.ProgressPartitionDone, crawl.ProgressPartitionFailed:
			deps.Logger.Debug("progress",
				"completed", event.Completed,
				"total", event.Total,
			)
		}
	}

	catalog, report, err := deps.Enumerator.Enumerate(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := deps.Exporter.Export(deps.Ctx, catalog); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", polcat.ErrorMessage(err))
		return err
	}

	if deps.Metrics != nil {
		deps.Metrics.RecordExport(catalog, time.Since(begin), time.Now())
		if err := deps.Metrics.WriteTextfile(c.MetricsFile); err != nil {
			deps.Logger.Error("metrics", "path", c.MetricsFile, "err", polcat.ErrorMessage(err))
		}
	}

	printReport(deps, report)
	fmt.Fprintf(deps.Stdout, "Wrote %s to %s (digest %s)\n",
		crawl.Plural(catalog.Len(), "document", "documents"), c.Output, crawl.Digest(catalog))

	return nil
}

// printReport lists what the catalog is missing, if anything.
func printReport(deps *Dependencies, report *crawl.Report) {
	if report.Complete() {
		return
	}

	if n := len(report.FailedPartitions); n > 0 {
		fmt.Fprintf(deps.Stderr, "Skipped %s:\n", crawl.Plural(n, "partition", "partitions"))
		for _, f := range report.FailedPartitions {
			fmt.Fprintf(deps.Stderr, "  %s\n", polcat.ErrorMessage(f.Err))
		}
	}
	if n := len(report.SkippedLinks); n > 0 {
		fmt.Fprintf(deps.Stderr, "Skipped %s:\n", crawl.Plural(n, "link", "links"))
		for _, f := range report.SkippedLinks {
			fmt.Fprintf(deps.Stderr, "  %s %s: %s\n", f.Partition, f.Link.Href, polcat.ErrorMessage(f.Err))
		}
	}
}
