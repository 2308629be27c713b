// Package log provides the diagnostics logger for webwords, built on the
// standard slog package.
//
// Diagnostics always go to a side channel (normally stderr) so they never
// mix into the wordlist or email output streams.
//
// The MaskingHandler sanitizes credential material before it reaches the
// log output: crawls may be configured with basic auth credentials and
// session cookies, and those must not leak into logs that get shared
// alongside generated wordlists.
package log
