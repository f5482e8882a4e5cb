package main

import (
	"fmt"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Search.Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qtdoc.ErrorMessage(err))
		if qtdoc.ErrorCode(err) == qtdoc.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: Run 'qt4doc build-index' first")
		}
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%2d. %s  (%.2f)\n    %s\n    %s\n", i+1, r.Title, r.Score, r.URL, r.Context)
	}

	return nil
}
