package crawler

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Outcome classifies the result of a single page fetch.
type Outcome int

const (
	// OutcomeSuccess means a 2xx response with an HTML-family content type.
	OutcomeSuccess Outcome = iota

	// OutcomeTransportFailure means a network-level error or a non-2xx
	// status. The page contributes no content.
	OutcomeTransportFailure

	// OutcomeNonHTML means the response had a content type unsuitable
	// for extraction (images, PDFs, plain text, ...).
	OutcomeNonHTML
)

// FetchResult is the tagged outcome of one fetch. It is created per fetch
// and consumed immediately by the engine; nothing retains it afterwards.
type FetchResult struct {
	// URL is the fetched URL.
	URL string

	// Outcome tags which of the remaining fields are meaningful.
	Outcome Outcome

	// StatusCode is the HTTP status code. Zero on transport errors that
	// never produced a response.
	StatusCode int

	// ContentType is the media type from the Content-Type header,
	// without parameters.
	ContentType string

	// Body is the response body, read up to the configured size limit.
	// Only set on success.
	Body []byte

	// Reason describes the failure for diagnostics. Empty on success.
	Reason string
}

// htmlContentTypes are the media types the parser can extract text from.
var htmlContentTypes = map[string]bool{
	"text/html":             true,
	"application/xhtml+xml": true,
}

// Fetcher performs single page requests with the configured identity
// (user agent, optional basic auth) and classifies each outcome.
//
// Design decision: We require an external http.Client rather than creating
// one internally because:
//  1. Transport concerns (TLS, redirects, pooling) stay outside the core
//  2. Tests can inject httptest clients with short timeouts
type Fetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// authUser and authPass are HTTP basic auth credentials.
	// Applied only when hasAuth is true.
	authUser string
	authPass string
	hasAuth  bool

	// headers are extra headers applied to every request.
	headers map[string]string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithBasicAuth sets HTTP basic auth credentials for every request.
func WithBasicAuth(user, pass string) FetcherOption {
	return func(f *Fetcher) {
		f.authUser = user
		f.authPass = pass
		f.hasAuth = true
	}
}

// WithHeaders sets extra headers applied to every request.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize limits the response body size read per page.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher using the given HTTP client.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch requests a single page and classifies the outcome. It never
// returns an error: transport failures and unsuitable content types are
// encoded in the result so that one dead page cannot crash the crawl.
// A single attempt is made per URL; there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) *FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return &FetchResult{
			URL:     pageURL,
			Outcome: OutcomeTransportFailure,
			Reason:  fmt.Sprintf("invalid request: %v", err),
		}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	if f.hasAuth {
		req.SetBasicAuth(f.authUser, f.authPass)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &FetchResult{
			URL:     pageURL,
			Outcome: OutcomeTransportFailure,
			Reason:  err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchResult{
			URL:        pageURL,
			Outcome:    OutcomeTransportFailure,
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	contentType := mediaType(resp.Header.Get("Content-Type"))
	if !htmlContentTypes[contentType] {
		return &FetchResult{
			URL:         pageURL,
			Outcome:     OutcomeNonHTML,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Reason:      fmt.Sprintf("unsuitable content type %q", contentType),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return &FetchResult{
			URL:        pageURL,
			Outcome:    OutcomeTransportFailure,
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("reading body: %v", err),
		}
	}

	return &FetchResult{
		URL:         pageURL,
		Outcome:     OutcomeSuccess,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}
}

// mediaType extracts the bare media type from a Content-Type header value,
// dropping parameters such as charset. An empty or malformed header is
// treated as text/html, since many small sites omit it.
func mediaType(header string) string {
	if header == "" {
		return "text/html"
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(header, ";", 2)[0]))
	}
	return mt
}
