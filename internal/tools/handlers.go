// File: internal/tools/handlers.go

package tools

import (
	"context"
	"encoding/base64"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/pagelens/internal/browser"
	"github.com/xkilldash9x/pagelens/internal/config"
	"github.com/xkilldash9x/pagelens/internal/dom"
	"github.com/xkilldash9x/pagelens/internal/sanitize"
)

// Handlers implements the tool operations. Each URL-based handler opens its
// own browser session and closes it before returning, on success and failure
// alike; nothing is shared between invocations.
type Handlers struct {
	launcher browser.Launcher
	shot     config.ScreenshotConfig
	logger   *zap.Logger
}

// NewHandlers wires the handlers to a session launcher and the screenshot
// settings.
func NewHandlers(launcher browser.Launcher, shot config.ScreenshotConfig, logger *zap.Logger) *Handlers {
	return &Handlers{
		launcher: launcher,
		shot:     shot,
		logger:   logger.Named("tools"),
	}
}

// withSession runs fn against a freshly launched session, guaranteeing the
// session is closed on every exit path.
func (h *Handlers) withSession(ctx context.Context, tool string, fn func(sess browser.Session) error) error {
	sess, err := h.launcher.Launch(ctx)
	if err != nil {
		h.logger.Error("Browser launch failed.", zap.String("tool", tool), zap.Error(err))
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			h.logger.Warn("Session close failed.",
				zap.String("tool", tool),
				zap.String("session_id", sess.ID()),
				zap.Error(cerr))
		}
	}()

	if err := fn(sess); err != nil {
		h.logger.Error("Tool operation failed.",
			zap.String("tool", tool),
			zap.String("session_id", sess.ID()),
			zap.Error(err))
		return err
	}
	return nil
}

// validateURL performs the syntactic part of the contract. URLs that parse
// but point nowhere are left to fail at navigation time as session errors.
func validateURL(raw string) *ValidationError {
	if raw == "" {
		return &ValidationError{Field: "url", Reason: "is required"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	return nil
}

// AnalyzePage loads a URL and reports its title and interactive elements.
func (h *Handlers) AnalyzePage(ctx context.Context, req *mcp.CallToolRequest, in AnalyzePageInput) (*mcp.CallToolResult, AnalyzeOutput, error) {
	empty := AnalyzeOutput{Elements: []dom.Element{}}

	if verr := validateURL(in.URL); verr != nil {
		return errorResult(verr.Error()), empty, nil
	}

	var out AnalyzeOutput
	err := h.withSession(ctx, "analyze-page", func(sess browser.Session) error {
		if err := sess.Navigate(ctx, in.URL); err != nil {
			return err
		}
		rendered, err := sess.HTML(ctx)
		if err != nil {
			return err
		}
		title, elements, err := dom.Analyze(rendered)
		if err != nil {
			return err
		}
		out = AnalyzeOutput{Title: title, Elements: elements}
		return nil
	})
	if err != nil {
		return errorResult(err.Error()), empty, nil
	}
	return nil, out, nil
}

// AnalyzeHTML runs the same analysis over caller-supplied markup. The markup
// is rendered in a session so dynamic content behaves as it would on a live
// page, but no navigation takes place. Empty or malformed markup is
// tolerated; it simply yields an empty analysis.
func (h *Handlers) AnalyzeHTML(ctx context.Context, req *mcp.CallToolRequest, in AnalyzeHTMLInput) (*mcp.CallToolResult, AnalyzeOutput, error) {
	empty := AnalyzeOutput{Elements: []dom.Element{}}

	var out AnalyzeOutput
	err := h.withSession(ctx, "analyze-html", func(sess browser.Session) error {
		if err := sess.SetContent(ctx, in.HTML); err != nil {
			return err
		}
		rendered, err := sess.HTML(ctx)
		if err != nil {
			return err
		}
		title, elements, err := dom.Analyze(rendered)
		if err != nil {
			return err
		}
		out = AnalyzeOutput{Title: title, Elements: elements}
		return nil
	})
	if err != nil {
		return errorResult(err.Error()), empty, nil
	}
	return nil, out, nil
}

// GetPageScreenshot captures a full-page screenshot of a URL.
func (h *Handlers) GetPageScreenshot(ctx context.Context, req *mcp.CallToolRequest, in ScreenshotInput) (*mcp.CallToolResult, ScreenshotOutput, error) {
	if verr := validateURL(in.URL); verr != nil {
		return errorResult(verr.Error()), ScreenshotOutput{}, nil
	}

	var out ScreenshotOutput
	err := h.withSession(ctx, "get-page-screenshot", func(sess browser.Session) error {
		if err := sess.Navigate(ctx, in.URL); err != nil {
			return err
		}
		raw, err := sess.Screenshot(ctx)
		if err != nil {
			return err
		}
		normalized, err := browser.NormalizeScreenshot(raw, h.shot)
		if err != nil {
			return err
		}
		out.ImageBase64 = base64.StdEncoding.EncodeToString(normalized)
		return nil
	})
	if err != nil {
		return errorResult(err.Error()), ScreenshotOutput{}, nil
	}
	return nil, out, nil
}

// ExtractDomTree loads a URL and serializes its element structure.
func (h *Handlers) ExtractDomTree(ctx context.Context, req *mcp.CallToolRequest, in DomTreeInput) (*mcp.CallToolResult, DomTreeOutput, error) {
	if verr := validateURL(in.URL); verr != nil {
		return errorResult(verr.Error()), DomTreeOutput{}, nil
	}

	var out DomTreeOutput
	err := h.withSession(ctx, "extract-dom-tree", func(sess browser.Session) error {
		if err := sess.Navigate(ctx, in.URL); err != nil {
			return err
		}
		rendered, err := sess.HTML(ctx)
		if err != nil {
			return err
		}
		tree, err := dom.Tree(rendered)
		if err != nil {
			return err
		}
		out.Tree = tree
		return nil
	})
	if err != nil {
		return errorResult(err.Error()), DomTreeOutput{}, nil
	}
	return nil, out, nil
}

// GetHTMLContent loads a URL and returns the rendered markup.
func (h *Handlers) GetHTMLContent(ctx context.Context, req *mcp.CallToolRequest, in HTMLContentInput) (*mcp.CallToolResult, HTMLContentOutput, error) {
	if verr := validateURL(in.URL); verr != nil {
		return errorResult(verr.Error()), HTMLContentOutput{}, nil
	}

	var out HTMLContentOutput
	err := h.withSession(ctx, "get-html-content", func(sess browser.Session) error {
		if err := sess.Navigate(ctx, in.URL); err != nil {
			return err
		}
		rendered, err := sess.HTML(ctx)
		if err != nil {
			return err
		}
		out.HTML = rendered
		return nil
	})
	if err != nil {
		return errorResult(err.Error()), HTMLContentOutput{}, nil
	}
	return nil, out, nil
}

// ExtractInnerHTML loads a URL and returns the inner HTML of the first
// element matching the selector. A selector that matches nothing yields an
// absent field, not a failure.
func (h *Handlers) ExtractInnerHTML(ctx context.Context, req *mcp.CallToolRequest, in InnerHTMLInput) (*mcp.CallToolResult, InnerHTMLOutput, error) {
	if verr := validateURL(in.URL); verr != nil {
		return errorResult(verr.Error()), InnerHTMLOutput{}, nil
	}
	if in.Selector == "" {
		verr := &ValidationError{Field: "selector", Reason: "is required"}
		return errorResult(verr.Error()), InnerHTMLOutput{}, nil
	}

	var out InnerHTMLOutput
	err := h.withSession(ctx, "extract-inner-html", func(sess browser.Session) error {
		if err := sess.Navigate(ctx, in.URL); err != nil {
			return err
		}
		inner, err := sess.InnerHTML(ctx, in.Selector)
		if err != nil {
			return err
		}
		out.InnerHTML = inner
		return nil
	})
	if err != nil {
		return errorResult(err.Error()), InnerHTMLOutput{}, nil
	}
	return nil, out, nil
}

// SanitizeHTML applies the textual filter. Pure transformation; no session
// is opened and no failure path exists.
func (h *Handlers) SanitizeHTML(ctx context.Context, req *mcp.CallToolRequest, in SanitizeInput) (*mcp.CallToolResult, SanitizeOutput, error) {
	return nil, SanitizeOutput{Sanitized: sanitize.HTML(in.HTML)}, nil
}
