// File: internal/browser/browser_test.go

package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xkilldash9x/pagelens/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSessionError(t *testing.T) {
	t.Parallel()

	cause := errors.New("chrome exited unexpectedly")
	err := &SessionError{Op: "navigate", Err: cause}

	assert.Equal(t, "browser session navigate: chrome exited unexpectedly", err.Error())
	assert.ErrorIs(t, err, cause)

	var sessErr *SessionError
	require.ErrorAs(t, error(err), &sessErr)
	assert.Equal(t, "navigate", sessErr.Op)
}

func TestBuildAllocatorOptions(t *testing.T) {
	t.Parallel()

	base := buildAllocatorOptions(config.BrowserConfig{Headless: true})
	assert.Greater(t, len(base), len(chromedp.DefaultExecAllocatorOptions))

	// Custom args and a user agent each contribute additional options.
	custom := buildAllocatorOptions(config.BrowserConfig{
		Headless:  true,
		UserAgent: "pagelens-test",
		Args:      []string{"--proxy-server=localhost:8080", "--disable-sync"},
	})
	assert.Equal(t, len(base)+3, len(custom))
}

func TestCombineContext(t *testing.T) {
	t.Parallel()

	t.Run("canceling the operational context cancels the combined one", func(t *testing.T) {
		t.Parallel()

		opCtx, opCancel := context.WithCancel(context.Background())
		combined, cancel := combineContext(context.Background(), opCtx)
		defer cancel()

		opCancel()
		select {
		case <-combined.Done():
		case <-time.After(time.Second):
			t.Fatal("combined context was not canceled")
		}
	})

	t.Run("values come from the session context", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		sessCtx := context.WithValue(context.Background(), key{}, "cdp")
		combined, cancel := combineContext(sessCtx, context.Background())
		defer cancel()

		assert.Equal(t, "cdp", combined.Value(key{}))
	})
}
