package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkobayashi/webwords/internal/model"
	"github.com/mkobayashi/webwords/internal/wordlist"
)

// Spider runs the breadth-first crawl and feeds extracted content into
// the word aggregator. It exclusively owns the frontier and the visited
// set for the duration of one run; no other component mutates them.
type Spider struct {
	// fetcher issues individual page requests.
	fetcher *Fetcher

	// maxDepth limits link hops from the seed. 0 means only the seed.
	maxDepth int

	// maxPages caps the total number of fetch attempts.
	// 0 means unlimited.
	maxPages int

	// workers bounds concurrent fetches within one depth level.
	workers int

	// includeMeta adds meta tag contents to word extraction.
	includeMeta bool

	// filter is the token normalization policy.
	filter wordlist.Filter

	// ignorePatterns and followPatterns restrict which same-host URLs
	// are enqueued, matched against the URL path with glob syntax.
	ignorePatterns []string
	followPatterns []string

	// logger is the injected diagnostics sink. Diagnostics never mix
	// into the wordlist or email output streams.
	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = seed plus directly linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages caps the total number of pages fetched. 0 means unlimited.
func WithMaxPages(n int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = n
	}
}

// WithWorkers bounds the number of concurrent fetches within a depth level.
func WithWorkers(n int) SpiderOption {
	return func(s *Spider) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithIncludeMeta controls whether meta tag contents contribute words.
func WithIncludeMeta(include bool) SpiderOption {
	return func(s *Spider) {
		s.includeMeta = include
	}
}

// WithFilter sets the token normalization policy.
func WithFilter(f wordlist.Filter) SpiderOption {
	return func(s *Spider) {
		s.filter = f
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// Patterns use glob syntax (e.g., "/admin/*", "*.pdf").
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets URL path patterns to follow during crawling.
// If set, only URLs matching at least one pattern are enqueued.
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.followPatterns = patterns
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSpider creates a Spider with the given fetcher.
func NewSpider(fetcher *Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:     fetcher,
		maxDepth:    2,
		workers:     5,
		includeMeta: true,
		filter:      wordlist.Filter{MinLength: 3},
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// frontierEntry is a URL tagged with the depth it was discovered at.
type frontierEntry struct {
	url   string
	depth int
}

// Crawl runs a breadth-first crawl from seedURL and returns the ranked
// wordlist, email set, and per-page failure diagnostics.
//
// The seed is always fetched, even at depth 0, since it defines the crawl
// domain. A malformed seed is a hard error; everything after that point
// is per-page and recoverable.
func (s *Spider) Crawl(ctx context.Context, seedURL string) (*model.CrawlResult, error) {
	resolver, err := NewResolver(seedURL)
	if err != nil {
		return nil, err
	}

	seed := NormalizeURL(seedURL)
	agg := wordlist.NewAggregator()
	parser := NewParser()

	result := &model.CrawlResult{
		Seed:      seed,
		StartedAt: time.Now(),
	}

	visited := map[string]struct{}{seed: {}}
	level := []frontierEntry{{url: seed, depth: 0}}
	attempted := 0

	for len(level) > 0 {
		s.logger.Debug("crawling level",
			"depth", level[0].depth,
			"entries", len(level),
		)

		fetched := s.fetchLevel(ctx, level)

		var next []frontierEntry
		for i, res := range fetched {
			if res == nil {
				// Fetch skipped due to cancellation.
				continue
			}
			attempted++

			if res.Outcome != OutcomeSuccess {
				s.logger.Warn("page skipped", "url", res.URL, "reason", res.Reason)
				result.Failures = append(result.Failures, model.PageFailure{
					URL:    res.URL,
					Reason: res.Reason,
				})
				continue
			}

			page, err := parser.Parse(bytes.NewReader(res.Body))
			if err != nil {
				s.logger.Warn("page not parseable", "url", res.URL, "error", err)
				result.Failures = append(result.Failures, model.PageFailure{
					URL:    res.URL,
					Reason: fmt.Sprintf("parse: %v", err),
				})
				continue
			}
			result.PagesFetched++

			agg.AddWords(wordlist.Tokenize(page.VisibleText(), s.filter))
			if s.includeMeta && len(page.MetaContents) > 0 {
				agg.AddWords(wordlist.Tokenize(page.MetaText(), s.filter))
			}
			agg.AddEmails(page.Emails)

			if level[i].depth >= s.maxDepth {
				continue
			}
			for _, link := range resolver.Resolve(res.URL, page.Hrefs) {
				if !s.shouldCrawl(link) {
					continue
				}
				if _, ok := visited[link]; ok {
					continue
				}
				visited[link] = struct{}{}
				next = append(next, frontierEntry{url: link, depth: level[i].depth + 1})
			}
		}

		if err := ctx.Err(); err != nil {
			s.finish(result)
			return result, err
		}

		if s.maxPages > 0 {
			remaining := s.maxPages - attempted
			if remaining <= 0 {
				break
			}
			if len(next) > remaining {
				next = next[:remaining]
			}
		}
		level = next
	}

	s.finish(result)
	result.Words = agg.Rank()
	result.Emails = agg.Emails()

	s.logger.Info("crawl complete",
		"seed", seed,
		"pagesFetched", result.PagesFetched,
		"pagesFailed", result.PagesFailed(),
		"uniqueWords", result.UniqueWords(),
		"emails", len(result.Emails),
	)

	return result, nil
}

// finish stamps the elapsed time on the result.
func (s *Spider) finish(result *model.CrawlResult) {
	result.Elapsed = time.Since(result.StartedAt)
}

// fetchLevel fetches all entries of one depth level concurrently through
// a bounded worker group. Results are returned aligned with the input
// order so the caller can process them deterministically; a nil slot
// means the fetch was skipped due to cancellation.
//
// The visited set is not touched here: enqueueing between levels happens
// on a single goroutine, which keeps test-and-mark trivially atomic.
func (s *Spider) fetchLevel(ctx context.Context, level []frontierEntry) []*FetchResult {
	results := make([]*FetchResult, len(level))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, entry := range level {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			s.logger.Debug("fetching", "url", entry.url, "depth", entry.depth)
			results[i] = s.fetcher.Fetch(gctx, entry.url)
			return nil
		})
	}

	// Fetch classifies its own failures; the only group error is
	// cancellation, which the caller observes via ctx.
	_ = g.Wait()

	return results
}

// shouldCrawl applies the ignore/follow pattern policy to a URL.
// A URL matching any ignore pattern is skipped; when follow patterns are
// set, a URL must match at least one of them. Applied at enqueue time.
func (s *Spider) shouldCrawl(pageURL string) bool {
	if len(s.ignorePatterns) == 0 && len(s.followPatterns) == 0 {
		return true
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	p := u.Path
	if p == "" {
		p = "/"
	}

	for _, pattern := range s.ignorePatterns {
		if matchPathPattern(pattern, p) {
			return false
		}
	}

	if len(s.followPatterns) > 0 {
		for _, pattern := range s.followPatterns {
			if matchPathPattern(pattern, p) {
				return true
			}
		}
		return false
	}

	return true
}

// matchPathPattern matches a URL path against a glob pattern.
// "/dir/*" matches anything under /dir, "*.ext" matches by extension,
// and anything else goes through path.Match single-segment globbing.
func matchPathPattern(pattern, p string) bool {
	if suffix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return p == suffix || strings.HasPrefix(p, suffix+"/")
	}

	if ext, ok := strings.CutPrefix(pattern, "*."); ok && !strings.Contains(pattern, "/") {
		return strings.HasSuffix(p, "."+ext)
	}

	matched, err := path.Match(pattern, p)
	return err == nil && matched
}
