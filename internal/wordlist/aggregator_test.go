package wordlist

import (
	"slices"
	"testing"

	"github.com/mkobayashi/webwords/internal/model"
)

func TestAggregatorRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pages []string
		want  []model.RankedWord
	}{
		{
			name:  "counts every occurrence",
			pages: []string{"cat cat dog"},
			want: []model.RankedWord{
				{Word: "cat", Count: 2},
				{Word: "dog", Count: 1},
			},
		},
		{
			name:  "merges counts across pages",
			pages: []string{"cat dog", "dog dog"},
			want: []model.RankedWord{
				{Word: "dog", Count: 3},
				{Word: "cat", Count: 1},
			},
		},
		{
			name:  "ties keep first-seen order",
			pages: []string{"zebra apple mango"},
			want: []model.RankedWord{
				{Word: "zebra", Count: 1},
				{Word: "apple", Count: 1},
				{Word: "mango", Count: 1},
			},
		},
		{
			name:  "empty input yields empty ranking",
			pages: nil,
			want:  []model.RankedWord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			agg := NewAggregator()
			for _, page := range tt.pages {
				agg.AddWords(Tokenize(page, Filter{MinLength: 3}))
			}

			if got := agg.Rank(); !slices.Equal(got, tt.want) {
				t.Errorf("Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregatorRankStable(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	agg.AddWords(Tokenize("cat cat dog sun sun fox", Filter{MinLength: 3}))

	want := []model.RankedWord{
		{Word: "cat", Count: 2},
		{Word: "sun", Count: 2},
		{Word: "dog", Count: 1},
		{Word: "fox", Count: 1},
	}

	// Rank must be deterministic on repeated calls.
	for range 3 {
		if got := agg.Rank(); !slices.Equal(got, want) {
			t.Errorf("Rank() = %v, want %v", got, want)
		}
	}
}

func TestAggregatorEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		adds [][]string
		want []string
	}{
		{
			name: "deduplicates case-insensitively",
			adds: [][]string{{"Admin@Example.com", "admin@example.com", "ADMIN@EXAMPLE.COM"}},
			want: []string{"admin@example.com"},
		},
		{
			name: "preserves first-seen order across pages",
			adds: [][]string{
				{"zoe@example.com"},
				{"amy@example.com", "zoe@example.com"},
			},
			want: []string{"zoe@example.com", "amy@example.com"},
		},
		{
			name: "no emails",
			adds: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			agg := NewAggregator()
			for _, batch := range tt.adds {
				agg.AddEmails(batch)
			}

			if got := agg.Emails(); !slices.Equal(got, tt.want) {
				t.Errorf("Emails() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregatorEmailsReturnsCopy(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	agg.AddEmails([]string{"a@example.com", "b@example.com"})

	got := agg.Emails()
	got[0] = "mutated"

	if fresh := agg.Emails(); fresh[0] != "a@example.com" {
		t.Errorf("Emails() internal state mutated: got %v", fresh)
	}
}
