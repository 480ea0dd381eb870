// File: internal/tools/registry.go

package tools

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// domTreeOutputSchema is spelled out by hand: the node type is recursive,
// which schema inference cannot express, so nodes refer to themselves
// through $defs. The tree property is nullable to cover failure results.
var domTreeOutputSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"tree"},
	Properties: map[string]*jsonschema.Schema{
		"tree": {
			AnyOf: []*jsonschema.Schema{
				{Ref: "#/$defs/node"},
				{Type: "null"},
			},
		},
	},
	Defs: map[string]*jsonschema.Schema{
		"node": {
			Type:     "object",
			Required: []string{"tag", "children"},
			Properties: map[string]*jsonschema.Schema{
				"tag":   {Type: "string"},
				"id":    {Type: "string"},
				"class": {Type: "string"},
				"children": {
					Type:  "array",
					Items: &jsonschema.Schema{Ref: "#/$defs/node"},
				},
			},
		},
	},
}

// Register binds every tool to the server. The set is built once at startup
// and never mutated afterwards; handlers hold no state beyond their wiring.
func Register(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze-page",
		Description: "Navigate to a URL and list the page title and interactive elements (inputs, buttons, links, selects, textareas) with stable selectors.",
	}, h.AnalyzePage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze-html",
		Description: "Render the supplied HTML and list its title and interactive elements without any network navigation.",
	}, h.AnalyzeHTML)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-page-screenshot",
		Description: "Navigate to a URL and capture a full-page screenshot, returned base64-encoded.",
	}, h.GetPageScreenshot)

	mcp.AddTool(server, &mcp.Tool{
		Name:         "extract-dom-tree",
		Description:  "Navigate to a URL and return a skeletal tree of the document's elements (tag, id, class, children).",
		OutputSchema: domTreeOutputSchema,
	}, h.ExtractDomTree)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-html-content",
		Description: "Navigate to a URL and return the fully rendered document markup.",
	}, h.GetHTMLContent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract-inner-html",
		Description: "Navigate to a URL and return the inner HTML of the first element matching a CSS selector. A selector that matches nothing yields no innerHTML field.",
	}, h.ExtractInnerHTML)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sanitize-html",
		Description: "Strip script, style, and iframe blocks, double-quoted inline event handlers, and javascript: scheme prefixes from HTML. Best-effort textual filter, not a full sanitizer.",
	}, h.SanitizeHTML)
}
