// File: internal/browser/context.go

package browser

import (
	"context"
)

// combineContext creates a context derived from ctx1 (the session context,
// which carries the CDP connection info) that is canceled when *either* ctx1
// or ctx2 (the operational context) is canceled. Values are inherited from
// ctx1, which is what chromedp requires.
func combineContext(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	combinedCtx, cancel := context.WithCancel(ctx1)

	// Link ctx2's lifecycle to the combined context. The goroutine stops when
	// either context is done.
	go func() {
		select {
		case <-ctx2.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	return combinedCtx, cancel
}
