// Package summarize condenses story text for the rendered digests.
package summarize

import (
	"context"
)

// Summarizer condenses a piece of text. Implementations may call out to
// a model and are allowed to fail; callers degrade to "no summary".
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) (string, error)
}

// TruncateSummarizer is the shipped placeholder implementation: it
// returns a prefix of the text. The Summarizer interface is the
// extension point for a real model.
type TruncateSummarizer struct {
	MaxChars int
}

func (s *TruncateSummarizer) Summarize(_ context.Context, _ string, text string) (string, error) {
	return Truncate(text, s.MaxChars), nil
}

// Truncate returns at most max characters of s, never splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
