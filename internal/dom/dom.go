// File: internal/dom/dom.go

// Package dom extracts agent-facing structure from rendered HTML: the
// interactive elements of a page and a skeletal element tree. It operates on
// serialized markup (typically the live DOM captured from a browser session),
// so JavaScript-generated content is visible to it as long as the caller
// captures the document after rendering.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element describes one interactive element of a page.
type Element struct {
	Tag      string `json:"tag"`
	Type     string `json:"type,omitempty"`
	Text     string `json:"text,omitempty"`
	Selector string `json:"selector"`
}

// Node is a skeletal mirror of one document element. Children are in
// document order; a leaf has an empty (never null) children list.
type Node struct {
	Tag      string  `json:"tag"`
	ID       string  `json:"id,omitempty"`
	Class    string  `json:"class,omitempty"`
	Children []*Node `json:"children"`
}

// attrVal returns the value of the named attribute, or "" when absent.
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
