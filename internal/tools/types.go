// File: internal/tools/types.go

// Package tools defines the MCP tool surface of pagelens: seven stateless
// operations, each backed by a fresh browser session (or, for the pure
// transformations, no session at all). The input and output shapes here are
// the external contract; field names must stay stable for existing callers.
package tools

import (
	"github.com/xkilldash9x/pagelens/internal/dom"
)

// AnalyzePageInput requests an interactive-element analysis of a live URL.
type AnalyzePageInput struct {
	URL string `json:"url"`
}

// AnalyzeHTMLInput requests the same analysis for caller-supplied markup.
type AnalyzeHTMLInput struct {
	HTML string `json:"html"`
}

// AnalyzeOutput carries the page title and the interactive elements found,
// in document order.
type AnalyzeOutput struct {
	Title    string        `json:"title"`
	Elements []dom.Element `json:"elements"`
}

// ScreenshotInput requests a full-page screenshot of a URL.
type ScreenshotInput struct {
	URL string `json:"url"`
}

// ScreenshotOutput carries the captured raster, base64-encoded.
type ScreenshotOutput struct {
	ImageBase64 string `json:"imageBase64"`
}

// DomTreeInput requests a skeletal element tree of a URL.
type DomTreeInput struct {
	URL string `json:"url"`
}

// DomTreeOutput carries the tree rooted at the page content.
type DomTreeOutput struct {
	Tree *dom.Node `json:"tree"`
}

// HTMLContentInput requests the rendered markup of a URL.
type HTMLContentInput struct {
	URL string `json:"url"`
}

// HTMLContentOutput carries the full serialized document.
type HTMLContentOutput struct {
	HTML string `json:"html"`
}

// InnerHTMLInput requests the inner HTML of one element on a live page.
type InnerHTMLInput struct {
	URL      string `json:"url"`
	Selector string `json:"selector"`
}

// InnerHTMLOutput carries the element's inner HTML. The field is absent when
// the selector matched nothing; that case is not a failure.
type InnerHTMLOutput struct {
	InnerHTML *string `json:"innerHTML,omitempty"`
}

// SanitizeInput requests a textual sanitization pass over raw markup.
type SanitizeInput struct {
	HTML string `json:"html"`
}

// SanitizeOutput carries the filtered markup.
type SanitizeOutput struct {
	Sanitized string `json:"sanitized"`
}
