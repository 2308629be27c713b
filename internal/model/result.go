package model

import "time"

// RankedWord is a single entry in the ranked wordlist.
type RankedWord struct {
	// Word is the normalized (case-folded) word.
	Word string `json:"word"`

	// Count is the number of occurrences across the whole crawl.
	// Always >= 1.
	Count int `json:"count"`
}

// PageFailure records a page that could not contribute content to the crawl.
// Failures are diagnostic only and never abort the crawl.
type PageFailure struct {
	// URL is the page URL that failed.
	URL string `json:"url"`

	// Reason is a short human-readable description of the failure
	// (transport error, non-2xx status, unsuitable content type).
	Reason string `json:"reason"`
}

// CrawlResult is the outcome of one complete crawl run.
//
// Design decision: We collect everything into a single result value rather
// than streaming because:
//  1. Ranking requires the full frequency table anyway
//  2. Report writers and the history database want the same snapshot
//  3. Wordlists are small relative to total memory
type CrawlResult struct {
	// Seed is the normalized seed URL the crawl started from.
	Seed string `json:"seed"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total crawl duration.
	Elapsed time.Duration `json:"elapsed"`

	// PagesFetched is the number of pages successfully fetched and extracted.
	PagesFetched int `json:"pages_fetched"`

	// Failures lists pages that failed to fetch or were skipped as non-HTML.
	Failures []PageFailure `json:"failures,omitempty"`

	// Words is the ranked wordlist, count-descending with first-seen
	// tie-breaking.
	Words []RankedWord `json:"words"`

	// Emails is the deduplicated email list in first-seen order.
	// Addresses are stored in canonical lowercase form.
	Emails []string `json:"emails,omitempty"`
}

// PagesFailed returns the number of failed pages.
func (r *CrawlResult) PagesFailed() int {
	return len(r.Failures)
}

// UniqueWords returns the number of distinct words found.
func (r *CrawlResult) UniqueWords() int {
	return len(r.Words)
}

// TotalOccurrences returns the sum of all word counts.
func (r *CrawlResult) TotalOccurrences() int {
	total := 0
	for _, w := range r.Words {
		total += w.Count
	}
	return total
}
