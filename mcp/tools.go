package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// ReadInput is the input schema for the read_documentation tool.
type ReadInput struct {
	URL         string `json:"url" jsonschema:"canonical Qt docs URL or corpus-relative filename"`
	Fragment    string `json:"fragment,omitempty" jsonschema:"optional #fragment anchor to focus"`
	SectionOnly bool   `json:"section_only,omitempty" jsonschema:"when true, return only the fragment's section"`
	StartIndex  int    `json:"start_index,omitempty" jsonschema:"start offset for chunking the markdown"`
	MaxLength   int    `json:"max_length,omitempty" jsonschema:"maximum characters to return"`
}

// ReadOutput is the output schema for the read_documentation tool.
type ReadOutput struct {
	Title        string       `json:"title"`
	URL          string       `json:"url"`
	CanonicalURL string       `json:"canonical_url"`
	Markdown     string       `json:"markdown"`
	Attribution  string       `json:"attribution"`
	Links        []qtdoc.Link `json:"links"`
	Pagination   Pagination   `json:"pagination"`
}

// Pagination reports the returned character window.
type Pagination struct {
	TotalLength    int  `json:"total_length"`
	ReturnedLength int  `json:"returned_length"`
	StartIndex     int  `json:"start_index"`
	Truncated      bool `json:"truncated"`
}

// SearchInput is the input schema for the search_documentation tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query; supports quoted phrases, AND/OR/NOT and prefix* matching"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (1-50, default 10)"`
}

// SearchOutput is the output schema for the search_documentation tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
	Context string  `json:"context"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_documentation",
		Description: "Fetch a Qt 4.8 documentation page as clean Markdown",
	}, s.handleRead)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documentation",
		Description: "Search the Qt 4.8 documentation corpus",
	}, s.handleSearch)
}

// handleRead handles the read_documentation tool invocation.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	result, err := s.ports.Documents.Read(ctx, input.URL, qtdoc.ReadOptions{
		Fragment:    input.Fragment,
		SectionOnly: input.SectionOnly,
		StartIndex:  input.StartIndex,
		MaxLength:   input.MaxLength,
	})
	if err != nil {
		return nil, ReadOutput{}, err
	}

	links := result.Links
	if links == nil {
		links = []qtdoc.Link{}
	}

	output := ReadOutput{
		Title:        result.Title,
		URL:          input.URL,
		CanonicalURL: result.URL,
		Markdown:     result.Markdown,
		Attribution:  qtdoc.Attribution,
		Links:        links,
		Pagination: Pagination{
			TotalLength:    result.Page.TotalLength,
			ReturnedLength: result.Page.ReturnedLength,
			StartIndex:     result.Page.StartIndex,
			Truncated:      result.Page.Truncated,
		},
	}

	return nil, output, nil
}

// handleSearch handles the search_documentation tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Title:   results[i].Title,
			URL:     results[i].URL,
			Score:   results[i].Score,
			Context: results[i].Context,
		}
	}

	return nil, output, nil
}
