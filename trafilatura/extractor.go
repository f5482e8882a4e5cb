// Package trafilatura provides a content-extraction fallback for pages
// outside the corpus's generated layout.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Extractor wraps go-trafilatura to isolate main content from HTML that the
// fixed selector chain cannot handle.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the page title and the main
// content as HTML.
func (e *Extractor) ExtractContent(rawHTML string) (string, string, error) {
	if rawHTML == "" {
		return "", "", qtdoc.Errorf(qtdoc.EPARSE, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return "", "", err
		}
	}

	return result.Metadata.Title, contentHTML, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
