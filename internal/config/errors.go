package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: We use package-level sentinel errors so callers can
// use errors.Is for programmatic handling while the messages stay
// human-readable. All of them are fatal: they abort the run before any
// network activity with a non-zero exit status.
var (
	// ErrNoSeedURL is returned when no seed URL is provided.
	ErrNoSeedURL = errors.New("no seed URL specified")

	// ErrInvalidSeedURL is returned when the seed URL is malformed or is
	// not an absolute http/https URL. The seed defines the crawl domain,
	// so a broken seed is a configuration error, not a crawl failure.
	ErrInvalidSeedURL = errors.New("invalid seed URL: must be an absolute http or https URL")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	ErrInvalidDepth = errors.New("invalid depth: must be non-negative")

	// ErrInvalidMinWordLength is returned when the minimum word length
	// is less than one.
	ErrInvalidMinWordLength = errors.New("invalid minimum word length: must be positive")

	// ErrInvalidMaxWordLength is returned when the maximum word length
	// is negative or smaller than the minimum word length.
	ErrInvalidMaxWordLength = errors.New("invalid maximum word length: must be >= minimum word length")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidMaxPages is returned when the page cap is negative.
	// Use 0 for an unlimited crawl.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be non-negative")

	// ErrInvalidAuthFormat is returned when the basic auth string is not
	// in "user:pass" form.
	ErrInvalidAuthFormat = errors.New(`invalid auth format: expected "user:pass"`)
)
