package main

import (
	"fmt"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	result, err := deps.Documents.Read(deps.Ctx, c.URL, qtdoc.ReadOptions{
		Fragment:    c.Fragment,
		SectionOnly: c.SectionOnly,
		StartIndex:  c.StartIndex,
		MaxLength:   c.MaxLength,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qtdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Markdown)

	if result.Page.Truncated {
		next := result.Page.StartIndex + result.Page.ReturnedLength
		fmt.Fprintf(deps.Stderr, "Truncated at %d of %d characters. Continue with --start-index %d\n",
			next, result.Page.TotalLength, next)
	}

	return nil
}
