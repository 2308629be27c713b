package crawler

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts the content the wordlist generator cares about from an
// HTML document: visible text, anchor hrefs, meta tag contents, and email
// candidates.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Script and style bodies can be excluded structurally
//  3. It always recovers a tree, so a broken page degrades to partial
//     extraction instead of a crawl failure
type Parser struct{}

// ParseResult holds everything extracted from one page. It is transient:
// produced and consumed within a single crawl step.
type ParseResult struct {
	// TextFragments are the visible text node contents in document order,
	// excluding script and style element bodies.
	TextFragments []string

	// Hrefs are the raw anchor href attribute values in document order.
	// Resolution against the page URL is the Resolver's job.
	Hrefs []string

	// MetaContents are the content attribute values of meta elements,
	// in document order.
	MetaContents []string

	// Emails are candidate addresses found anywhere in the document,
	// including attribute values such as mailto: hrefs. Stored in
	// canonical lowercase form, deduplicated, first-seen order.
	Emails []string
}

// emailPattern matches the standard local@domain shape. It is deliberately
// permissive; the aggregator deduplicates and the caller decides what to
// keep. Kept as package data so tests can substitute stricter patterns.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an HTML document and extracts text, hrefs, meta contents,
// and email candidates.
//
// Emails are scanned over the full raw document rather than just the
// visible text, because addresses frequently appear only in attributes
// (mailto: links in particular).
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Emails: extractEmails(string(raw)),
	}

	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		// html.Parse only fails on reader errors, which cannot happen
		// with a strings.Reader, but keep emails if it ever does.
		return result, err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				// Not natural-language content; skip the whole subtree.
				return
			case "a":
				if href := strings.TrimSpace(getAttr(n, "href")); href != "" {
					result.Hrefs = append(result.Hrefs, href)
				}
			case "meta":
				if content := getAttr(n, "content"); content != "" {
					result.MetaContents = append(result.MetaContents, content)
				}
			}
		case html.TextNode:
			if text := n.Data; strings.TrimSpace(text) != "" {
				result.TextFragments = append(result.TextFragments, text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

// VisibleText joins the extracted text fragments with spaces.
func (r *ParseResult) VisibleText() string {
	return strings.Join(r.TextFragments, " ")
}

// MetaText joins the extracted meta contents with spaces.
func (r *ParseResult) MetaText() string {
	return strings.Join(r.MetaContents, " ")
}

// extractEmails scans text for email candidates, lowercasing and
// deduplicating while preserving first-seen order.
func extractEmails(text string) []string {
	matches := emailPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	unique := make([]string, 0, len(matches))
	for _, email := range matches {
		lower := strings.ToLower(email)
		if !seen[lower] {
			seen[lower] = true
			unique = append(unique, lower)
		}
	}
	return unique
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
