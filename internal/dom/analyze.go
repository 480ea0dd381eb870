// File: internal/dom/analyze.go

package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// interactiveTags are the element names that always count as interactive.
var interactiveTags = map[string]struct{}{
	"input":    {},
	"button":   {},
	"a":        {},
	"select":   {},
	"textarea": {},
}

// Analyze parses the given markup and returns the page title together with a
// descriptor for every interactive element, in document order. Elements with
// role="button" are included even when their tag is not on the interactive
// list. Parsing is tolerant; malformed markup yields a best-effort result
// rather than an error.
func Analyze(rawHTML string) (string, []Element, error) {
	doc, err := htmlquery.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", nil, fmt.Errorf("parsing document: %w", err)
	}

	elements := make([]Element, 0)
	walk(doc, func(n *html.Node) {
		if isInteractive(n) {
			elements = append(elements, describe(n))
		}
	})

	return pageTitle(doc), elements, nil
}

// pageTitle returns the trimmed text of the first <title> element, or "".
func pageTitle(doc *html.Node) string {
	if n := htmlquery.FindOne(doc, "//title"); n != nil {
		return strings.TrimSpace(htmlquery.InnerText(n))
	}
	return ""
}

// walk visits every element node of the tree in document (pre-)order.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isInteractive(n *html.Node) bool {
	tag := strings.ToLower(n.Data)
	if _, ok := interactiveTags[tag]; ok {
		return true
	}
	return attrVal(n, "role") == "button"
}

// describe builds the descriptor for a single interactive element. The
// selector prefers an id, then a name attribute, and falls back to the bare
// tag name when the element carries neither.
func describe(n *html.Node) Element {
	el := Element{Tag: strings.ToLower(n.Data)}
	if t := attrVal(n, "type"); t != "" {
		el.Type = t
	}
	if text := strings.TrimSpace(htmlquery.InnerText(n)); text != "" {
		el.Text = text
	}
	switch {
	case attrVal(n, "id") != "":
		el.Selector = "#" + attrVal(n, "id")
	case attrVal(n, "name") != "":
		el.Selector = fmt.Sprintf("[name=%q]", attrVal(n, "name"))
	default:
		el.Selector = el.Tag
	}
	return el
}
