// Package report renders crawl summaries in Markdown and JSON.
//
// The summary is separate from the primary wordlist output: the wordlist
// stays a plain sequence of lines, while a report captures run metadata
// (pages fetched, failures, top words, emails) for documentation or tool
// integration.
package report
