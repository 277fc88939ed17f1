// Package textclean normalizes raw OCR output before analysis.
package textclean

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EncodingError reports malformed input text. The only failure mode of
// cleaning.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence at byte %d", e.Offset)
}

// artifacts matches characters OCR tends to hallucinate; letters,
// digits, whitespace and basic punctuation survive.
var artifacts = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?\-:;'"()]`)

var whitespace = regexp.MustCompile(`\s+`)

// Cleaner turns raw OCR text into analyzable text
type Cleaner struct {
	lowercase bool
}

// NewCleaner creates a cleaner; lowercase folds the text to lower case
func NewCleaner(lowercase bool) *Cleaner {
	return &Cleaner{lowercase: lowercase}
}

// Clean collapses whitespace runs, strips recognition artifacts and
// optionally lowercases. Idempotent: cleaning cleaned text is a no-op.
func (c *Cleaner) Clean(raw string) (string, error) {
	if !utf8.ValidString(raw) {
		off := 0
		for i := 0; i < len(raw); {
			r, size := utf8.DecodeRuneInString(raw[i:])
			if r == utf8.RuneError && size == 1 {
				off = i
				break
			}
			i += size
		}
		return "", &EncodingError{Offset: off}
	}

	text := strings.ReplaceAll(raw, string(utf8.RuneError), " ")
	text = artifacts.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if c.lowercase {
		text = strings.ToLower(text)
	}
	return text, nil
}
