package main

import (
	"fmt"

	"github.com/fwojciec/polcat"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter polcat.DocumentFilter
	if c.Type != "" {
		typ := polcat.DocumentType(c.Type)
		filter.Type = &typ
	}

	docs, err := deps.Catalogs.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", polcat.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'polcat crawl --sqlite' to store a catalog.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %s\n", d.ID, d.Type, d.Name)
	}

	if last, err := deps.Catalogs.LastExport(deps.Ctx); err == nil {
		fmt.Fprintf(deps.Stdout, "\nExported %s (%d documents, hash %s)\n",
			last.ExportedAt.Format("2006-01-02 15:04:05"), last.Documents, last.ContentHash)
	}

	return nil
}
