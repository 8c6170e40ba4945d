package main

import (
	"fmt"

	"github.com/msousa/jango"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	count, err := deps.Indexer.Rebuild(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
		return err
	}

	if count == 0 {
		fmt.Fprintln(deps.Stdout, "Indexed 0 chunks. Use 'jango scrape' to collect documents first.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks\n", count)
	return nil
}
