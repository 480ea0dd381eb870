// File: internal/sanitize/sanitize.go

// Package sanitize strips active content from HTML strings.
//
// This is a deliberate best-effort textual filter, not a DOM-aware
// sanitizer: it runs a fixed sequence of regexp substitutions over the raw
// markup and does not catch obfuscated scheme strings, single-quoted or
// unquoted event-handler attributes, or malformed/overlapping tags. Callers
// needing a hard security boundary must layer a real sanitizer on top.
package sanitize

import "regexp"

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockRe   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	eventHandlerRe = regexp.MustCompile(`(?i)\s+on\w+="[^"]*"`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	iframeBlockRe  = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
)

// HTML removes script blocks, style blocks, double-quoted inline event
// handler attributes, "javascript:" scheme prefixes and iframe blocks, in
// that order. Each step scans the original tag/attribute syntax; the
// operation is idempotent for markup that is already clean.
func HTML(raw string) string {
	out := scriptBlockRe.ReplaceAllString(raw, "")
	out = styleBlockRe.ReplaceAllString(out, "")
	out = eventHandlerRe.ReplaceAllString(out, "")
	out = jsSchemeRe.ReplaceAllString(out, "")
	out = iframeBlockRe.ReplaceAllString(out, "")
	return out
}
