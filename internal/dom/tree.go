// File: internal/dom/tree.go

package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Tree parses the given markup and returns a skeletal element tree rooted at
// the page content. When the body wraps exactly one element, that element is
// the root; a body holding several siblings is itself returned so none of
// them are lost. Text, comments, and other non-element nodes are omitted.
func Tree(rawHTML string) (*Node, error) {
	doc, err := htmlquery.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	body := htmlquery.FindOne(doc, "//body")
	if body == nil {
		return nil, errors.New("document has no body element")
	}

	root := serialize(body)
	if len(root.Children) == 1 {
		return root.Children[0], nil
	}
	return root, nil
}

func serialize(n *html.Node) *Node {
	node := &Node{
		Tag:      strings.ToLower(n.Data),
		ID:       attrVal(n, "id"),
		Class:    attrVal(n, "class"),
		Children: make([]*Node, 0),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			node.Children = append(node.Children, serialize(c))
		}
	}
	return node
}
