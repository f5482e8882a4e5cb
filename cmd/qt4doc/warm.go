package main

import (
	"fmt"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Run executes the warm command.
func (c *WarmCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Warming Markdown store from %s\n", deps.Config.DocBase)

	progress := func(p qtdoc.WarmProgress) {
		pct := float64(p.Completed) * 100.0 / float64(p.Total)
		fmt.Fprintf(deps.Stderr, "\r[%5d/%d] %5.1f%%  %s", p.Completed, p.Total, pct, p.RelPath)
	}

	converted, err := deps.Documents.WarmAll(deps.Ctx, progress)
	fmt.Fprintln(deps.Stderr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qtdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done. Converted %d pages.\n", converted)

	return nil
}
