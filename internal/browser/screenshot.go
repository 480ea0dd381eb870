// File: internal/browser/screenshot.go

package browser

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/xkilldash9x/pagelens/internal/config"
)

// NormalizeScreenshot re-encodes a captured screenshot for transport: images
// wider than cfg.MaxWidth are scaled down proportionally, and the result is
// encoded as JPEG at cfg.Quality. MaxWidth of zero disables resizing.
func NormalizeScreenshot(raw []byte, cfg config.ScreenshotConfig) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}

	if cfg.MaxWidth > 0 && img.Bounds().Dx() > cfg.MaxWidth {
		img = imaging.Resize(img, cfg.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(cfg.Quality)); err != nil {
		return nil, fmt.Errorf("encoding screenshot: %w", err)
	}
	return buf.Bytes(), nil
}
