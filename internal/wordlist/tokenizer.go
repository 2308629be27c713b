package wordlist

import (
	"iter"
	"unicode"

	"golang.org/x/text/cases"
)

// Filter controls which tokens survive normalization.
//
// Design decision: We pass filter settings as a value rather than
// constructing a Tokenizer type because tokenization is a pure function
// over (text, filter) and carries no state between calls.
type Filter struct {
	// MinLength is the minimum token length in runes. Tokens shorter
	// than this are dropped. Must be >= 1.
	MinLength int

	// MaxLength is the maximum token length in runes. Zero means no
	// upper bound.
	MaxLength int

	// AllowDigits keeps tokens that contain decimal digits. When false,
	// any token containing a digit is dropped entirely.
	AllowDigits bool
}

// Tokenize splits text into normalized candidate words.
//
// Token characters are Unicode letters and digits; any other rune is a
// boundary, so accented and non-Latin letters count as word characters.
// Every surviving token is lowercased with Unicode case folding.
//
// Length and digit filters are applied at emission time and never
// retroactively, matching the aggregator's insertion-time policy.
//
// The returned sequence is lazy and emits words in document order, which
// downstream ranking relies on for stable tie-breaking.
func Tokenize(text string, f Filter) iter.Seq[string] {
	return func(yield func(string) bool) {
		// Caser values are stateful and must not be shared.
		folder := cases.Fold()

		start := -1
		runeCount := 0
		hasDigit := false

		emit := func(end int) bool {
			defer func() {
				start = -1
				runeCount = 0
				hasDigit = false
			}()

			if runeCount < f.MinLength {
				return true
			}
			if f.MaxLength > 0 && runeCount > f.MaxLength {
				return true
			}
			if hasDigit && !f.AllowDigits {
				return true
			}
			return yield(folder.String(text[start:end]))
		}

		for i, r := range text {
			switch {
			case unicode.IsLetter(r):
				if start < 0 {
					start = i
				}
				runeCount++
			case unicode.IsDigit(r):
				if start < 0 {
					start = i
				}
				runeCount++
				hasDigit = true
			default:
				if start >= 0 && !emit(i) {
					return
				}
			}
		}
		if start >= 0 {
			emit(len(text))
		}
	}
}
