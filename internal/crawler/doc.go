// Package crawler implements the bounded breadth-first site crawl that
// feeds the wordlist generator.
//
// # Architecture
//
// The crawler is built around the Spider type, which owns the URL frontier
// and the visited set for the duration of one run. Supporting components
// are pure over their inputs:
//
//   - Fetcher: issues one page request and classifies the outcome
//   - Parser: extracts visible text, hrefs, meta contents, and email
//     candidates from HTML
//   - Resolver: resolves hrefs against the page URL and filters to the
//     seed's host
//
// Design decision: We implement our own crawler rather than using a
// third-party library because:
//  1. The frontier needs strict level-by-level depth accounting
//  2. Output determinism requires processing results in queue order
//  3. Custom extraction (words, emails, meta) is the whole point
//
// # Traversal
//
// The frontier advances one depth level at a time. Entries within a level
// are fetched concurrently through a bounded worker group, but extraction
// and aggregation happen sequentially in queue order so that first-seen
// word order, and therefore ranking tie-breaks, stay deterministic. A page
// that fails to fetch contributes nothing and never aborts the crawl.
package crawler
