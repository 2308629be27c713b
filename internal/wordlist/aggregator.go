package wordlist

import (
	"iter"
	"sort"
	"strings"

	"github.com/mkobayashi/webwords/internal/model"
)

// Aggregator accumulates word frequencies and email addresses across a
// whole crawl. It is owned exclusively by the crawl engine; all mutation
// is funneled through AddWords and AddEmails on a single goroutine.
//
// Design decision: We track first-seen insertion order alongside the
// frequency map because Go map iteration order is randomized. Ranking
// sorts a slice built in insertion order with a stable sort, which keeps
// output deterministic across runs on identical input.
type Aggregator struct {
	// counts maps normalized word to occurrence count.
	counts map[string]int

	// order lists words in first-seen order.
	order []string

	// emailSeen tracks emails already recorded, keyed by canonical
	// lowercase form.
	emailSeen map[string]struct{}

	// emails lists canonical emails in first-seen order.
	emails []string
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		counts:    make(map[string]int),
		emailSeen: make(map[string]struct{}),
	}
}

// AddWords consumes a word sequence and increments each word's count once
// per occurrence. A word appearing three times on one page counts as three.
func (a *Aggregator) AddWords(words iter.Seq[string]) {
	for w := range words {
		if _, ok := a.counts[w]; !ok {
			a.order = append(a.order, w)
		}
		a.counts[w]++
	}
}

// AddEmails records email addresses, deduplicating case-insensitively.
// The set stores one canonical lowercase form per distinct address.
func (a *Aggregator) AddEmails(emails []string) {
	for _, e := range emails {
		canonical := strings.ToLower(e)
		if _, ok := a.emailSeen[canonical]; ok {
			continue
		}
		a.emailSeen[canonical] = struct{}{}
		a.emails = append(a.emails, canonical)
	}
}

// Rank returns the accumulated words sorted by count descending.
// Ties keep first-seen order (stable sort over insertion order).
func (a *Aggregator) Rank() []model.RankedWord {
	ranked := make([]model.RankedWord, 0, len(a.order))
	for _, w := range a.order {
		ranked = append(ranked, model.RankedWord{Word: w, Count: a.counts[w]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Emails returns the accumulated email addresses in first-seen order.
func (a *Aggregator) Emails() []string {
	out := make([]string, len(a.emails))
	copy(out, a.emails)
	return out
}
