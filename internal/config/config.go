package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Word-length and depth defaults follow
// common wordlist-generator conventions; network defaults are chosen
// for ordinary clearnet sites.
const (
	// DefaultDepth is the default crawl depth. Depth 0 fetches only the
	// seed page; 2 covers most small sites without exploding scope.
	DefaultDepth = 2

	// DefaultMinWordLength drops one- and two-letter noise ("a", "of").
	DefaultMinWordLength = 3

	// DefaultTimeout is the per-request timeout. Ten seconds is generous
	// for pages worth extracting words from.
	DefaultTimeout = 10 * time.Second

	// DefaultWorkers bounds concurrent fetches within one depth level.
	DefaultWorkers = 5

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is plenty for HTML while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent is sent when the user does not override it.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// AppName is the application name used for XDG directory paths.
	AppName = "webwords"
)

// Config holds all options for one crawl run. It is populated from CLI
// flags, validated once before any network activity, and then treated as
// immutable by every component downstream.
//
// Design decision: We use a single flat struct passed by dependency
// injection rather than global state, mirroring how the flag surface of
// the tool maps one-to-one onto fields.
type Config struct {
	// SeedURL is the absolute URL the crawl starts from. It defines the
	// crawl domain: only links on the same host are followed.
	SeedURL string

	// Depth is the maximum number of link hops from the seed.
	// 0 means only the seed page is fetched.
	Depth int

	// MinWordLength is the minimum accepted word length in runes.
	MinWordLength int

	// MaxWordLength is the maximum accepted word length in runes.
	// 0 means no upper bound. When set it must be >= MinWordLength.
	MaxWordLength int

	// AllowDigits keeps words containing decimal digits.
	AllowDigits bool

	// IncludeMeta adds meta tag content attribute values to word
	// extraction.
	IncludeMeta bool

	// ShowCounts appends the occurrence count to each output line.
	ShowCounts bool

	// OutputFile is the wordlist destination. Empty means stdout.
	OutputFile string

	// EmailFile is the destination for the extracted email list.
	// Empty means emails are not written to a separate file.
	EmailFile string

	// EmailOnly suppresses the wordlist entirely; the email set becomes
	// the only output.
	EmailOnly bool

	// Auth is an HTTP basic auth credential in "user:pass" form.
	Auth string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Workers bounds concurrent fetches within one depth level.
	Workers int

	// MaxPages caps the total number of pages fetched. 0 means unlimited.
	MaxPages int

	// ConfigFilePath is an explicit path to the per-host YAML config.
	// Empty means search the working directory and home directory.
	ConfigFilePath string

	// Sites holds per-host overrides loaded from the config file.
	Sites *File

	// ReportFile, when set, writes a Markdown crawl summary to this path.
	ReportFile string

	// JSONReportFile, when set, writes a JSON crawl summary to this path.
	JSONReportFile string

	// NoHistory disables recording the run in the history database.
	NoHistory bool

	// Verbose enables debug-level diagnostics on stderr.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Depth:         DefaultDepth,
		MinWordLength: DefaultMinWordLength,
		IncludeMeta:   true,
		Timeout:       DefaultTimeout,
		Workers:       DefaultWorkers,
		UserAgent:     DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for webwords.
// On Linux: ~/.local/share/webwords
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing; a failure here aborts the run
// before any network activity.
func (c *Config) Validate() error {
	if c.SeedURL == "" {
		return ErrNoSeedURL
	}
	u, err := url.Parse(c.SeedURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidSeedURL
	}

	if c.Depth < 0 {
		return ErrInvalidDepth
	}
	if c.MinWordLength < 1 {
		return ErrInvalidMinWordLength
	}
	if c.MaxWordLength < 0 || (c.MaxWordLength > 0 && c.MaxWordLength < c.MinWordLength) {
		return ErrInvalidMaxWordLength
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}

	if _, _, err := c.BasicAuth(); err != nil {
		return err
	}

	return nil
}

// BasicAuth splits the Auth string into user and password.
// Returns empty strings when no auth is configured.
func (c *Config) BasicAuth() (user, pass string, err error) {
	if c.Auth == "" {
		return "", "", nil
	}
	user, pass, ok := strings.Cut(c.Auth, ":")
	if !ok || user == "" {
		return "", "", ErrInvalidAuthFormat
	}
	return user, pass, nil
}

// SeedHost returns the host of the seed URL. Call only after Validate.
func (c *Config) SeedHost() string {
	u, err := url.Parse(c.SeedURL)
	if err != nil {
		return ""
	}
	return u.Host
}
