package crawl

import (
	"sort"

	"github.com/fwojciec/polcat"
)

// PhaseResult holds the documents one phase produced, partition by
// partition in partition order.
type PhaseResult struct {
	Scheme     polcat.Scheme
	Partitions [][]*polcat.Document
}

// Reconcile merges phase results into a catalog. Phases are merged in
// ascending scheme precedence whatever order they are passed in, so a
// document's authoritative type always replaces its inferred type. Inside
// a phase, later partitions overwrite earlier ones.
func Reconcile(results []PhaseResult) *polcat.Catalog {
	ordered := make([]PhaseResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Scheme.Precedence() < ordered[j].Scheme.Precedence()
	})

	catalog := polcat.NewCatalog()
	for _, phase := range ordered {
		for _, docs := range phase.Partitions {
			catalog.Merge(docs...)
		}
	}
	return catalog
}
