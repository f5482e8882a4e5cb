package main

import (
	"fmt"
	"time"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Run executes the build-index command.
func (c *BuildIndexCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Building search index from %s\n", deps.Config.DocBase)
	fmt.Fprintf(deps.Stdout, "Index will be written to %s\n", deps.Config.IndexPath)

	progress := func(p qtdoc.BuildProgress) {
		pct := float64(p.Current) * 100.0 / float64(p.Total)
		fmt.Fprintf(deps.Stderr, "\r[%5d/%d] %5.1f%%  %s", p.Current, p.Total, pct, p.RelPath)
	}

	stats, err := deps.Index.Build(deps.Ctx, deps.Config.DocBase, c.Force, progress)
	fmt.Fprintln(deps.Stderr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qtdoc.ErrorMessage(err))
		return err
	}

	if stats.Reused {
		fmt.Fprintf(deps.Stdout, "Index is up to date (fingerprint %s). Use --force to rebuild.\n", stats.Fingerprint)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Index build complete in %s\n", stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(deps.Stdout, "  Indexed: %d\n", stats.Indexed)
	fmt.Fprintf(deps.Stdout, "  Skipped: %d\n", stats.Skipped)

	return nil
}
