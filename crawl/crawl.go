// Package crawl enumerates the policy suite index. It drives partition
// fetches for both index schemes, classifies the links found and
// reconciles the results into a single catalog.
package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/polcat"
	"golang.org/x/sync/errgroup"
)

// Enumerator queries every index partition and builds the catalog.
type Enumerator struct {
	Index      polcat.IndexFetcher
	Classifier *polcat.Classifier
	Vocabulary polcat.Vocabulary

	// Concurrency bounds parallel fetches within a phase. Values below 1
	// mean sequential fetching.
	Concurrency int
}

// Report summarizes an enumeration run.
type Report struct {
	Partitions       int
	Links            int
	Documents        int
	FailedPartitions []PartitionFailure
	SkippedLinks     []LinkFailure
}

// Complete reports whether every partition and link was processed.
func (r *Report) Complete() bool {
	return len(r.FailedPartitions) == 0 && len(r.SkippedLinks) == 0
}

// PartitionFailure records a partition that contributed no documents.
type PartitionFailure struct {
	Partition polcat.Partition
	Err       error
}

// LinkFailure records a candidate link that was skipped.
type LinkFailure struct {
	Partition polcat.Partition
	Link      polcat.Link
	Err       error
}

// ProgressEvent reports progress during an enumeration.
type ProgressEvent struct {
	Type      ProgressType
	Partition polcat.Partition
	Link      polcat.Link
	Documents int
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPartitionDone ProgressType = iota
	ProgressPartitionFailed
	ProgressLinkSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting enumeration progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// partitionResult holds the outcome of processing a single partition.
type partitionResult struct {
	docs    []*polcat.Document
	links   int
	skipped []LinkFailure
	err     error
}

// Enumerate fetches all partitions of both schemes and returns the
// reconciled catalog. Partition and link failures are recorded in the
// report and never abort the run; an error is returned only if ctx is
// canceled.
func (e *Enumerator) Enumerate(ctx context.Context, progress ProgressFunc) (*polcat.Catalog, *Report, error) {
	phases := polcat.Phases(e.Vocabulary)

	total := 0
	for _, phase := range phases {
		total += len(phase.Partitions)
	}

	report := &Report{}
	notifier := &notifier{fn: progress, total: total}

	results := make([]PhaseResult, 0, len(phases))
	for _, phase := range phases {
		result, err := e.runPhase(ctx, phase, report, notifier)
		if err != nil {
			return nil, report, err
		}
		results = append(results, result)
	}

	catalog := Reconcile(results)
	report.Documents = catalog.Len()

	notifier.notify(ProgressEvent{
		Type:      ProgressFinished,
		Documents: catalog.Len(),
	})

	return catalog, report, nil
}

// runPhase processes every partition of one phase. It returns only after
// all of the phase's partitions are done.
func (e *Enumerator) runPhase(ctx context.Context, phase polcat.Phase, report *Report, n *notifier) (PhaseResult, error) {
	concurrency := e.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]partitionResult, len(phase.Partitions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range phase.Partitions {
		g.Go(func() error {
			results[i] = e.processPartition(gctx, p, n)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return PhaseResult{}, err
	}

	phaseResult := PhaseResult{
		Scheme:     phase.Scheme,
		Partitions: make([][]*polcat.Document, len(results)),
	}
	for i, r := range results {
		report.Partitions++
		report.Links += r.links
		report.SkippedLinks = append(report.SkippedLinks, r.skipped...)
		if r.err != nil {
			report.FailedPartitions = append(report.FailedPartitions, PartitionFailure{
				Partition: phase.Partitions[i],
				Err:       r.err,
			})
			continue
		}
		phaseResult.Partitions[i] = r.docs
	}

	return phaseResult, nil
}

// processPartition fetches one partition and classifies its links.
func (e *Enumerator) processPartition(ctx context.Context, p polcat.Partition, n *notifier) partitionResult {
	var result partitionResult

	links, err := e.Index.FetchPartition(ctx, p)
	if err != nil {
		result.err = err
		n.complete(ProgressEvent{
			Type:      ProgressPartitionFailed,
			Partition: p,
			Error:     err,
		})
		return result
	}
	result.links = len(links)

	schemeType := p.AuthoritativeType()
	for _, link := range links {
		doc, err := e.Classifier.Classify(link, schemeType)
		if err != nil {
			result.skipped = append(result.skipped, LinkFailure{Partition: p, Link: link, Err: err})
			n.notify(ProgressEvent{
				Type:      ProgressLinkSkipped,
				Partition: p,
				Link:      link,
				Error:     err,
			})
			continue
		}
		result.docs = append(result.docs, doc)
	}

	n.complete(ProgressEvent{
		Type:      ProgressPartitionDone,
		Partition: p,
		Documents: len(result.docs),
	})
	return result
}

// notifier serializes progress callbacks from concurrent workers.
type notifier struct {
	mu        sync.Mutex
	fn        ProgressFunc
	completed int
	total     int
}

func (n *notifier) notify(event ProgressEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	event.Completed = n.completed
	event.Total = n.total
	if n.fn != nil {
		n.fn(event)
	}
}

// complete counts a finished partition and reports it.
func (n *notifier) complete(event ProgressEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed++
	event.Completed = n.completed
	event.Total = n.total
	if n.fn != nil {
		n.fn(event)
	}
}
