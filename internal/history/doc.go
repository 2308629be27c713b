// Package history persists crawl run summaries in a local SQLite database
// so that past runs can be listed and compared.
//
// The database lives in the XDG data directory and stores one row per run
// plus the top-ranked words for that run. Full wordlists are not stored;
// those belong to the user's output files.
package history
