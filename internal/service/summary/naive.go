package summary

import (
	"regexp"
	"strings"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Naive produces the degraded local summary used when no AI provider is
// configured or the provider call fails: the first three sentences of the
// text, joined with terminal punctuation.
func Naive(text string) string {
	parts := sentenceEnd.Split(strings.TrimSpace(text), -1)

	sentences := make([]string, 0, 3)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
		if len(sentences) == 3 {
			break
		}
	}

	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}
