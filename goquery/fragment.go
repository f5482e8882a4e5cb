package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// narrowToFragment returns the section of main anchored at the given
// fragment id: the anchor's heading plus everything up to the next heading
// of the same or a higher level. Returns nil when the id does not occur,
// so the caller can fall back to the whole content region.
//
// The corpus anchors sections either as <h2 id="x"> or as an empty
// <a name="x"> immediately before the heading.
func narrowToFragment(main *goquery.Selection, fragment string) *goquery.Selection {
	anchor := findAnchor(main, fragment)
	if anchor == nil {
		return nil
	}

	heading := anchorHeading(anchor)
	if heading == nil {
		return nil
	}

	level := headingLevel(heading)

	// Collect the heading and its following siblings until a heading of the
	// same or a higher level closes the section.
	nodes := []*html.Node{heading}
	for n := heading.NextSibling; n != nil; n = n.NextSibling {
		if l := headingLevel(n); l > 0 && l <= level {
			break
		}
		nodes = append(nodes, n)
	}

	sel := main.FindNodes(nodes[0]) // non-empty Selection bound to the document
	return newSelectionFromNodes(sel, nodes)
}

// findAnchor locates the node carrying the fragment id, either as an id
// attribute or as a named a element.
func findAnchor(main *goquery.Selection, fragment string) *html.Node {
	var found *html.Node

	main.Find("[id], a[name]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if id, ok := sel.Attr("id"); ok && id == fragment {
			found = sel.Get(0)
			return false
		}
		if name, ok := sel.Attr("name"); ok && name == fragment {
			found = sel.Get(0)
			return false
		}
		return true
	})

	return found
}

// anchorHeading maps an anchor node to the heading that opens its section:
// the node itself when it is a heading, the enclosing heading, or the next
// heading sibling for empty named anchors.
func anchorHeading(anchor *html.Node) *html.Node {
	if headingLevel(anchor) > 0 {
		return anchor
	}

	for p := anchor.Parent; p != nil; p = p.Parent {
		if headingLevel(p) > 0 {
			return p
		}
	}

	for n := anchor.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			if headingLevel(n) > 0 {
				return n
			}
			return nil
		}
	}

	return nil
}

// headingLevel returns 1-6 for h1-h6 element nodes and 0 otherwise.
func headingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	tag := strings.ToLower(n.Data)
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// newSelectionFromNodes widens a document-bound selection to the full node
// list of the section.
func newSelectionFromNodes(bound *goquery.Selection, nodes []*html.Node) *goquery.Selection {
	return bound.AddNodes(nodes[1:]...)
}
