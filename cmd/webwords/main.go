// Package main provides the entry point for the webwords CLI.
//
// webwords generates a ranked wordlist and an email list from the textual
// content of a website by crawling it up to a bounded depth, staying on
// the originating host.
//
// Usage:
//
//	webwords crawl https://example.com
//	webwords crawl -d 1 -m 5 -c https://example.com
//	webwords history
//
// See --help for all available options.
package main

// main is the entry point for webwords.
func main() {
	Execute()
}
