// File: internal/tools/registry_test.go

package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/pagelens/internal/browser"
)

// connectClient registers the handlers on a fresh server and returns a live
// client session over an in-memory transport, so every call exercises the
// real SDK path: registration, schema inference and validation, dispatch.
func connectClient(t *testing.T, f *fakeLauncher) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{Name: "pagelens", Version: "test"}, nil)
	Register(server, newTestHandlers(f))

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "pagelens-test", Version: "test"}, nil)
	clientSession, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, clientSession.Close())
		require.NoError(t, serverSession.Wait())
	})
	return clientSession
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func structured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()

	sc, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok, "structured content is %T", res.StructuredContent)
	return sc
}

func TestRegisterRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("all tools are registered", func(t *testing.T) {
		t.Parallel()

		cs := connectClient(t, &fakeLauncher{})
		listed, err := cs.ListTools(context.Background(), nil)
		require.NoError(t, err)

		names := make([]string, 0, len(listed.Tools))
		for _, tool := range listed.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{
			"analyze-page",
			"analyze-html",
			"get-page-screenshot",
			"extract-dom-tree",
			"get-html-content",
			"extract-inner-html",
			"sanitize-html",
		}, names)
	})

	t.Run("analyze-page", func(t *testing.T) {
		t.Parallel()

		f := &fakeLauncher{
			html: `<html><head><title>Login</title></head><body><input id="user" type="text"></body></html>`,
		}
		cs := connectClient(t, f)

		res := callTool(t, cs, "analyze-page", map[string]any{"url": "https://example.com"})
		require.False(t, res.IsError)

		sc := structured(t, res)
		assert.Equal(t, "Login", sc["title"])
		elements, ok := sc["elements"].([]any)
		require.True(t, ok)
		require.Len(t, elements, 1)
		assert.Equal(t, "#user", elements[0].(map[string]any)["selector"])

		opened, closed := f.counts()
		assert.Equal(t, 1, opened)
		assert.Equal(t, opened, closed)
	})

	t.Run("analyze-html", func(t *testing.T) {
		t.Parallel()

		cs := connectClient(t, &fakeLauncher{})
		res := callTool(t, cs, "analyze-html", map[string]any{
			"html": `<html><head><title>Static</title></head><body><button name="go">Go</button></body></html>`,
		})
		require.False(t, res.IsError)

		sc := structured(t, res)
		assert.Equal(t, "Static", sc["title"])
	})

	t.Run("get-page-screenshot", func(t *testing.T) {
		t.Parallel()

		cs := connectClient(t, &fakeLauncher{screenshot: tinyPNG(t)})
		res := callTool(t, cs, "get-page-screenshot", map[string]any{"url": "https://example.com"})
		require.False(t, res.IsError)

		sc := structured(t, res)
		image, ok := sc["imageBase64"].(string)
		require.True(t, ok)
		assert.NotEmpty(t, image)
	})

	// The node type is recursive; this call fails at registration time if
	// the output schema ever falls back to inference.
	t.Run("extract-dom-tree", func(t *testing.T) {
		t.Parallel()

		f := &fakeLauncher{
			html: `<html><body><div id="app"><span></span></div></body></html>`,
		}
		cs := connectClient(t, f)

		res := callTool(t, cs, "extract-dom-tree", map[string]any{"url": "https://example.com"})
		require.False(t, res.IsError)

		sc := structured(t, res)
		tree, ok := sc["tree"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "div", tree["tag"])
		assert.Equal(t, "app", tree["id"])

		children, ok := tree["children"].([]any)
		require.True(t, ok)
		require.Len(t, children, 1)
		child := children[0].(map[string]any)
		assert.Equal(t, "span", child["tag"])
		assert.Empty(t, child["children"])
	})

	t.Run("get-html-content", func(t *testing.T) {
		t.Parallel()

		const rendered = `<html><head></head><body><p>hi</p></body></html>`
		cs := connectClient(t, &fakeLauncher{html: rendered})

		res := callTool(t, cs, "get-html-content", map[string]any{"url": "https://example.com"})
		require.False(t, res.IsError)
		assert.Equal(t, rendered, structured(t, res)["html"])
	})

	t.Run("extract-inner-html with no match omits the field", func(t *testing.T) {
		t.Parallel()

		cs := connectClient(t, &fakeLauncher{})
		res := callTool(t, cs, "extract-inner-html", map[string]any{
			"url":      "https://example.com",
			"selector": "#missing",
		})
		require.False(t, res.IsError)

		sc := structured(t, res)
		_, present := sc["innerHTML"]
		assert.False(t, present)
	})

	t.Run("sanitize-html", func(t *testing.T) {
		t.Parallel()

		cs := connectClient(t, &fakeLauncher{})
		res := callTool(t, cs, "sanitize-html", map[string]any{
			"html": `<p onclick="alert(1)">hi</p>`,
		})
		require.False(t, res.IsError)
		assert.Equal(t, "<p>hi</p>", structured(t, res)["sanitized"])
	})

	t.Run("navigation failure is an in-band tool error", func(t *testing.T) {
		t.Parallel()

		f := &fakeLauncher{
			navErr: &browser.SessionError{Op: "navigate", Err: errors.New("host unreachable")},
		}
		cs := connectClient(t, f)

		res := callTool(t, cs, "get-html-content", map[string]any{"url": "https://down.example.com"})
		assert.True(t, res.IsError)

		opened, closed := f.counts()
		assert.Equal(t, 1, opened)
		assert.Equal(t, opened, closed)
	})
}
