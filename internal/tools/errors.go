// File: internal/tools/errors.go

package tools

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ValidationError reports tool input that fails the contract before any
// browser work starts, as opposed to a browser.SessionError raised by the
// engine at runtime.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// errorResult wraps a message as a tool-level failure. Tool failures travel
// inside the result (IsError) rather than as protocol errors, so the caller
// still receives a well-formed response.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
