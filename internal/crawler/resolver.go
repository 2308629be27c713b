package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolver turns raw href candidates into normalized absolute URLs,
// restricted to the same host as the seed.
//
// Same-domain is interpreted as an exact host match against the seed's
// host. This is the conservative choice: subdomain-inclusive matching
// could pull in arbitrarily large crawl scopes.
type Resolver struct {
	// seedHost is the host (including port, if any) of the seed URL.
	seedHost string
}

// NewResolver creates a Resolver for the given seed URL.
// The seed must be an absolute http or https URL.
func NewResolver(seedURL string) (*Resolver, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("seed URL must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("seed URL %q has no host", seedURL)
	}
	return &Resolver{seedHost: strings.ToLower(u.Host)}, nil
}

// Resolve resolves href candidates against the page's own URL (not the
// seed), normalizes them for dedup, and filters out everything that
// leaves the seed's host. Order is preserved; duplicates are left to the
// engine's visited set.
func (r *Resolver) Resolve(pageURL string, hrefs []string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	resolved := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		if skipHref(href) {
			continue
		}

		u, err := url.Parse(href)
		if err != nil {
			continue
		}

		// Standard resolution: relative refs resolve against the page,
		// scheme-relative refs inherit the page scheme.
		abs := base.ResolveReference(u)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		if !strings.EqualFold(abs.Host, r.seedHost) {
			continue
		}

		resolved = append(resolved, normalizeURL(abs))
	}
	return resolved
}

// SameHost reports whether the URL's host matches the seed's host exactly.
func (r *Resolver) SameHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.seedHost)
}

// skipHref filters out hrefs that can never become crawlable pages.
func skipHref(href string) bool {
	if href == "" || href == "#" {
		return true
	}
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// normalizeURL canonicalizes a URL for visited-set comparison.
// Two URLs differing only by fragment are the same page, and an empty
// path is equivalent to "/".
func normalizeURL(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	if c.Path == "" {
		c.Path = "/"
	}
	return c.String()
}

// NormalizeURL canonicalizes a raw URL string for visited-set comparison.
// Malformed URLs are returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return normalizeURL(u)
}
