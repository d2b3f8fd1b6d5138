// Package extract turns captured page HTML into the plain text the
// summarizer consumes. HTML is sanitized before conversion; the output is
// whitespace-collapsed and capped the same way the popup's content script
// caps its own extraction.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"

	"mindnotes/internal/config"
)

var whitespace = regexp.MustCompile(`\s+`)

// PageExtractor converts raw page HTML to plain text in two stages:
// sanitize (strip scripts, event handlers, javascript: URLs), then convert
// the surviving markup to markdown-flavored text.
//
// Thread-safe for concurrent use.
type PageExtractor struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewPageExtractor creates an extractor with a UGC sanitizing policy.
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{
		policy:    bluemonday.UGCPolicy(),
		converter: md.NewConverter("", true, nil),
	}
}

// PageText extracts readable text from HTML. The result is collapsed to
// single spaces and truncated to the shared page-text cap.
func (e *PageExtractor) PageText(html string) (string, error) {
	sanitized := e.policy.Sanitize(html)

	text, err := e.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("convert page content: %w", err)
	}

	return Clip(whitespace.ReplaceAllString(strings.TrimSpace(text), " ")), nil
}

// Clip truncates text to the page-text cap without splitting a rune.
func Clip(text string) string {
	if len(text) <= config.MaxPageTextLength {
		return text
	}
	clipped := text[:config.MaxPageTextLength]
	for len(clipped) > 0 && !utf8.ValidString(clipped) {
		clipped = clipped[:len(clipped)-1]
	}
	return clipped
}
