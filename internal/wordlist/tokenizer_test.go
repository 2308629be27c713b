package wordlist

import (
	"slices"
	"testing"
)

func collect(text string, f Filter) []string {
	var got []string
	for w := range Tokenize(text, f) {
		got = append(got, w)
	}
	return got
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		filter Filter
		want   []string
	}{
		{
			name:   "lowercases and splits on punctuation",
			text:   "Hello, World! Hello again.",
			filter: Filter{MinLength: 3},
			want:   []string{"hello", "world", "hello", "again"},
		},
		{
			name:   "drops words below minimum length",
			text:   "a an the cat",
			filter: Filter{MinLength: 3},
			want:   []string{"the", "cat"},
		},
		{
			name:   "minimum length counts runes not bytes",
			text:   "zoé ab",
			filter: Filter{MinLength: 3},
			want:   []string{"zoé"},
		},
		{
			name:   "drops words above maximum length",
			text:   "short extraordinarily long",
			filter: Filter{MinLength: 3, MaxLength: 5},
			want:   []string{"short", "long"},
		},
		{
			name:   "exact length window",
			text:   "cat category dog",
			filter: Filter{MinLength: 3, MaxLength: 3},
			want:   []string{"cat", "dog"},
		},
		{
			name:   "rejects digit-bearing words by default",
			text:   "password123 admin 2024",
			filter: Filter{MinLength: 3},
			want:   []string{"admin"},
		},
		{
			name:   "keeps digit-bearing words when allowed",
			text:   "password123 admin 2024",
			filter: Filter{MinLength: 3, AllowDigits: true},
			want:   []string{"password123", "admin", "2024"},
		},
		{
			name:   "treats accented letters as word characters",
			text:   "café naïve résumé",
			filter: Filter{MinLength: 3},
			want:   []string{"café", "naïve", "résumé"},
		},
		{
			name:   "splits hyphenated and underscored words",
			text:   "well-known snake_case",
			filter: Filter{MinLength: 3},
			want:   []string{"well", "known", "snake", "case"},
		},
		{
			name:   "handles non-latin scripts",
			text:   "こんにちは мир",
			filter: Filter{MinLength: 3},
			want:   []string{"こんにちは", "мир"},
		},
		{
			name:   "emits trailing word without boundary",
			text:   "one two",
			filter: Filter{MinLength: 3},
			want:   []string{"one", "two"},
		},
		{
			name:   "empty input yields nothing",
			text:   "",
			filter: Filter{MinLength: 3},
			want:   nil,
		},
		{
			name:   "whitespace only yields nothing",
			text:   "  \t\n  ",
			filter: Filter{MinLength: 3},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := collect(tt.text, tt.filter); !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeCaseFolding(t *testing.T) {
	t.Parallel()

	// ẞ (latin capital sharp s) folds to ss, which plain lowercasing
	// would not produce.
	got := collect("STRAẞE Straße", Filter{MinLength: 3})
	want := []string{"strasse", "strasse"}
	if !slices.Equal(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	t.Parallel()

	f := Filter{MinLength: 3}
	first := collect("The QUICK Brown Fox", f)

	// Re-tokenizing already-normalized output must reproduce it.
	for _, w := range first {
		if got := collect(w, f); len(got) != 1 || got[0] != w {
			t.Errorf("Tokenize(%q) = %v, want [%s]", w, got, w)
		}
	}
}

func TestTokenizeEarlyStop(t *testing.T) {
	t.Parallel()

	var got []string
	for w := range Tokenize("one two three", Filter{MinLength: 3}) {
		got = append(got, w)
		break
	}
	if want := []string{"one"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
