// File: internal/browser/browser.go

// Package browser manages isolated, short-lived browser sessions. A session
// wraps a dedicated headless Chrome process and tab; callers open one per
// tool invocation and must close it on every path, success or failure.
package browser

import (
	"context"
	"fmt"
)

// Session is a single live browser tab. All blocking operations honor the
// caller's context as well as the session's own lifetime.
type Session interface {
	// ID returns the unique identifier assigned at launch.
	ID() string

	// Navigate loads the given URL and waits for the document body.
	Navigate(ctx context.Context, url string) error

	// SetContent replaces the current document with the given markup without
	// performing any network navigation.
	SetContent(ctx context.Context, html string) error

	// HTML returns the serialized outer HTML of the rendered document.
	HTML(ctx context.Context) (string, error)

	// InnerHTML returns the inner HTML of the first element matching the CSS
	// selector, or nil when no element matches. A missing element is not an
	// error.
	InnerHTML(ctx context.Context, selector string) (*string, error)

	// Screenshot captures a full-page screenshot as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close terminates the tab and its browser process. Safe to call more
	// than once.
	Close() error
}

// Launcher starts new browser sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// SessionError wraps a failure of the underlying browser during a named
// operation, distinguishing environment faults from bad tool input.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("browser session %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}
