package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// headingTags in extraction order. Fields are collected tag by tag so the
// output is stable across builds of an unchanged page.
var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// Ensure Extractor implements qtdoc.FieldExtractor at compile time.
var _ qtdoc.FieldExtractor = (*Extractor)(nil)

// ExtractSearchFields derives the index fields from raw page HTML: the page
// title, the concatenated h1-h6 heading text, and the body text of the main
// content region with headings removed to avoid double weighting.
func (e *Extractor) ExtractSearchFields(rawHTML string) (*qtdoc.SearchFields, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, qtdoc.Errorf(qtdoc.EPARSE, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, qtdoc.Errorf(qtdoc.EPARSE, "failed to parse HTML: %v", err)
	}

	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}

	title := pageTitle(doc)

	main := mainContent(doc)
	if main == nil {
		main = doc.Find("body").First()
	}
	if main.Length() == 0 {
		return &qtdoc.SearchFields{Title: title}, nil
	}

	var headings []string
	for _, tag := range headingTags {
		main.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				headings = append(headings, text)
			}
		})
	}

	for _, tag := range headingTags {
		main.Find(tag).Remove()
	}

	body := strings.Join(strings.Fields(main.Text()), " ")

	return &qtdoc.SearchFields{
		Title:    title,
		Headings: strings.Join(headings, " "),
		Body:     body,
	}, nil
}
