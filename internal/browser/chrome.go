// File: internal/browser/chrome.go

package browser

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/pagelens/internal/config"
)

// launchProbeTimeout bounds the initial about:blank round trip used to
// confirm the browser process started and is responsive.
const launchProbeTimeout = 30 * time.Second

// ChromeLauncher starts one headless Chrome process per session.
type ChromeLauncher struct {
	cfg    config.BrowserConfig
	logger *zap.Logger
}

// NewChromeLauncher builds a launcher from the browser section of the config.
func NewChromeLauncher(cfg config.BrowserConfig, logger *zap.Logger) *ChromeLauncher {
	return &ChromeLauncher{
		cfg:    cfg,
		logger: logger.Named("browser"),
	}
}

// Launch starts a fresh browser process and tab and verifies it responds
// before handing the session out. The session lives until Close is called;
// ctx only bounds the launch itself via the responsiveness probe.
func (l *ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	id := uuid.NewString()
	logger := l.logger.With(zap.String("session_id", id))
	logger.Debug("Launching browser session.")

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), buildAllocatorOptions(l.cfg)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// Run a trivial task to confirm the browser is alive.
	probeCtx, probeCancel := context.WithTimeout(tabCtx, launchProbeTimeout)
	defer probeCancel()
	if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
		tabCancel()
		allocCancel()
		return nil, &SessionError{Op: "launch", Err: err}
	}
	if err := ctx.Err(); err != nil {
		tabCancel()
		allocCancel()
		return nil, &SessionError{Op: "launch", Err: err}
	}

	logger.Debug("Browser session is responsive.")
	return &chromeSession{
		id:          id,
		ctx:         tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		navTimeout:  l.cfg.NavigationTimeout,
		logger:      logger,
	}, nil
}

// buildAllocatorOptions assembles the launch flags for an isolated headless
// instance. Later flags override the chromedp defaults, which is how the
// automation banner flag is suppressed.
func buildAllocatorOptions(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	opts = append(opts,
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("ignore-certificate-errors", cfg.IgnoreTLSErrors),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-gpu", cfg.Headless),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	// Custom arguments from the config file, e.g. "--proxy-server=...".
	for _, arg := range cfg.Args {
		parts := strings.SplitN(arg, "=", 2)
		flagName := strings.TrimPrefix(parts[0], "--")
		if len(parts) == 2 {
			opts = append(opts, chromedp.Flag(flagName, parts[1]))
		} else {
			opts = append(opts, chromedp.Flag(flagName, true))
		}
	}

	// Flags required for running inside containers (e.g. Docker on Linux).
	if runtime.GOOS == "linux" {
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-setuid-sandbox", true),
		)
	}

	return opts
}

type chromeSession struct {
	id          string
	ctx         context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	navTimeout  time.Duration
	logger      *zap.Logger
	closeOnce   sync.Once
}

func (s *chromeSession) ID() string {
	return s.id
}

// Navigate loads the URL and waits for the document body to be ready.
func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))

	opCtx, opCancel := combineContext(s.ctx, ctx)
	defer opCancel()

	navTimeout := s.navTimeout
	if navTimeout <= 0 {
		navTimeout = 90 * time.Second
	}
	navCtx, navCancel := context.WithTimeout(opCtx, navTimeout)
	defer navCancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if navCtx.Err() == context.DeadlineExceeded {
			return &SessionError{Op: "navigate", Err: fmt.Errorf("timed out after %s: %w", navTimeout, err)}
		}
		return &SessionError{Op: "navigate", Err: err}
	}
	return nil
}

// SetContent replaces the main frame's document with the given markup. No
// network navigation takes place; external references in the markup are
// still fetched by the renderer as usual.
func (s *chromeSession) SetContent(ctx context.Context, html string) error {
	return s.run(ctx, "set content",
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("resolving main frame: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// HTML captures the serialized outer HTML of the rendered document.
func (s *chromeSession) HTML(ctx context.Context) (string, error) {
	var content string
	err := s.run(ctx, "capture html",
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &content, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return content, nil
}

// InnerHTML evaluates a querySelector lookup in the page. A selector that
// matches nothing yields (nil, nil); only evaluation failures are errors.
func (s *chromeSession) InnerHTML(ctx context.Context, selector string) (*string, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return nil, &SessionError{Op: "inner html", Err: fmt.Errorf("encoding selector: %w", err)}
	}
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%s); return el === null ? null : el.innerHTML; })()`,
		quoted,
	)

	var result *string
	if err := s.run(ctx, "inner html", chromedp.Evaluate(expr, &result)); err != nil {
		return nil, err
	}
	return result, nil
}

// Screenshot captures the full page as PNG. Sizing and re-encoding are left
// to NormalizeScreenshot so the capture stays lossless.
func (s *chromeSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	// Quality 100 makes chromedp emit PNG instead of JPEG.
	if err := s.run(ctx, "screenshot", chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close tears down the tab and the browser process. Idempotent.
func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.logger.Debug("Closing browser session.")
		if err := chromedp.Cancel(s.ctx); err != nil {
			s.logger.Warn("Graceful browser shutdown failed.", zap.Error(err))
		}
		s.tabCancel()
		s.allocCancel()
	})
	return nil
}

// run executes chromedp actions respecting both the session lifetime and the
// incoming request context, wrapping failures as SessionErrors.
func (s *chromeSession) run(ctx context.Context, op string, actions ...chromedp.Action) error {
	runCtx, cancel := combineContext(s.ctx, ctx)
	defer cancel()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return &SessionError{Op: op, Err: err}
	}
	return nil
}
