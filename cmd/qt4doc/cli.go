package main

import (
	"context"
	"io"
	"log/slog"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Logger    *slog.Logger
	Documents qtdoc.DocumentService
	Search    qtdoc.SearchService
	Index     qtdoc.IndexService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve      ServeCmd      `cmd:"" help:"Serve the documentation over the Model Context Protocol"`
	BuildIndex BuildIndexCmd `cmd:"" name:"build-index" help:"Build the full-text search index"`
	Warm       WarmCmd       `cmd:"" help:"Pre-convert the whole corpus into the Markdown store"`
	Search     SearchCmd     `cmd:"" help:"Search the documentation from the command line"`
	Read       ReadCmd       `cmd:"" help:"Print a documentation page as Markdown"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `help:"Listen address for streamable HTTP transport (default: stdio)" placeholder:"ADDR"`
}

// BuildIndexCmd is the "build-index" subcommand.
type BuildIndexCmd struct {
	Force bool `short:"f" help:"Rebuild even when the corpus is unchanged"`
}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct {
	Concurrency int `short:"c" default:"8" help:"Concurrent conversion limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"FTS query (supports quoted phrases, AND/OR/NOT, prefix*)"`
	Limit int    `short:"n" default:"10" help:"Maximum number of results"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	URL         string `arg:"" help:"Canonical URL or corpus-relative filename"`
	Fragment    string `help:"Anchor to focus within the page"`
	SectionOnly bool   `help:"Return only the fragment's section"`
	StartIndex  int    `help:"Start offset for chunked reading"`
	MaxLength   int    `help:"Maximum characters to return"`
}
