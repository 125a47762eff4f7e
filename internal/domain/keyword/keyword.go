// Package keyword extracts countable keywords from recognition messages.
package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultMinLength drops short, stopword-style tokens.
const defaultMinLength = 4

// Extractor tokenizes free text into lower-cased keywords.
type Extractor struct {
	minLength int
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMinLength sets the minimum rune length for a token to survive.
func WithMinLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minLength = n
		}
	}
}

// New creates an Extractor with configuration options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		minLength: defaultMinLength,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract lower-cases text, splits on non-letter boundaries, and returns
// every token of at least the configured length, in order of appearance.
// Duplicate tokens are returned once per occurrence; the caller counts.
func (e *Extractor) Extract(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	out := tokens[:0]
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) >= e.minLength {
			out = append(out, tok)
		}
	}
	return out
}
