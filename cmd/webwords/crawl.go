package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkobayashi/webwords/internal/config"
	"github.com/mkobayashi/webwords/internal/crawler"
	"github.com/mkobayashi/webwords/internal/history"
	"github.com/mkobayashi/webwords/internal/log"
	"github.com/mkobayashi/webwords/internal/model"
	"github.com/mkobayashi/webwords/internal/report"
	"github.com/mkobayashi/webwords/internal/wordlist"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Crawl a website and generate a ranked wordlist",
		Long: `Crawl fetches a website breadth-first up to the given depth, restricted
to the seed URL's host, and produces a wordlist ranked by occurrence
count. Email addresses found anywhere in the crawled pages can be
written to a separate file.

Word extraction uses the visible page text (script and style bodies are
excluded) plus meta tag contents unless --no-meta is given. Words are
lowercased with Unicode case folding and filtered by length and digit
policy before counting.

Examples:
  # Crawl two levels deep, minimum word length 5
  webwords crawl -d 2 -m 5 https://example.com

  # Write the wordlist to a file with occurrence counts
  webwords crawl -c -w wordlist.txt https://example.com

  # Collect email addresses as well
  webwords crawl -e emails.txt https://example.com

  # Authenticated crawl with a custom user agent
  webwords crawl -a admin:secret -u "Mozilla/5.0" https://intranet.example.com

Configuration file (.webwords) example:
  defaults:
    userAgent: "webwords/1.0"
  sites:
    intranet.example.com:
      cookie: "session=abc123"
      depth: 3
      ignorePatterns: ["/logout*", "*.pdf"]`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultDepth,
		"Maximum crawl depth (0 = seed page only)")
	cmd.Flags().IntP("min-word-length", "m", config.DefaultMinWordLength,
		"Minimum word length")
	cmd.Flags().IntP("max-word-length", "x", 0,
		"Maximum word length (0 = unlimited)")
	cmd.Flags().BoolP("with-numbers", "n", false,
		"Accept words containing digits")
	cmd.Flags().Bool("no-meta", false,
		"Do not extract words from meta tag contents")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().Int("workers", config.DefaultWorkers,
		"Concurrent fetches within one depth level")
	cmd.Flags().IntP("max-pages", "p", 0,
		"Maximum number of pages to fetch (0 = unlimited)")

	// Identity flags
	cmd.Flags().StringP("auth", "a", "",
		`HTTP basic authentication (format: "user:pass")`)
	cmd.Flags().StringP("user-agent", "u", "",
		"Custom User-Agent header")

	// Output flags
	cmd.Flags().StringP("write", "w", "",
		"Write the wordlist to the given file instead of stdout")
	cmd.Flags().BoolP("count", "c", false,
		"Show the occurrence count for each word")
	cmd.Flags().StringP("email", "e", "",
		"Extract email addresses and write them to the given file")
	cmd.Flags().Bool("email-only", false,
		"Extract only email addresses, no wordlist")
	cmd.Flags().String("report", "",
		"Write a Markdown crawl summary to the given file")
	cmd.Flags().String("json-report", "",
		"Write a JSON crawl summary to the given file")

	// Configuration file and history
	cmd.Flags().String("config", "",
		"Configuration file path (default: .webwords in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Fail fast on configuration errors, before any network activity.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SeedURL = args[0]

	var err error

	if cfg.Depth, err = cmd.Flags().GetInt("depth"); err != nil {
		return nil, err
	}
	if cfg.MinWordLength, err = cmd.Flags().GetInt("min-word-length"); err != nil {
		return nil, err
	}
	if cfg.MaxWordLength, err = cmd.Flags().GetInt("max-word-length"); err != nil {
		return nil, err
	}
	if cfg.AllowDigits, err = cmd.Flags().GetBool("with-numbers"); err != nil {
		return nil, err
	}
	noMeta, err := cmd.Flags().GetBool("no-meta")
	if err != nil {
		return nil, err
	}
	cfg.IncludeMeta = !noMeta

	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
		return nil, err
	}
	if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
		return nil, err
	}

	if cfg.Auth, err = cmd.Flags().GetString("auth"); err != nil {
		return nil, err
	}
	if ua, err := cmd.Flags().GetString("user-agent"); err != nil {
		return nil, err
	} else if ua != "" {
		cfg.UserAgent = ua
	}

	if cfg.OutputFile, err = cmd.Flags().GetString("write"); err != nil {
		return nil, err
	}
	if cfg.ShowCounts, err = cmd.Flags().GetBool("count"); err != nil {
		return nil, err
	}
	if cfg.EmailFile, err = cmd.Flags().GetString("email"); err != nil {
		return nil, err
	}
	if cfg.EmailOnly, err = cmd.Flags().GetBool("email-only"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("report"); err != nil {
		return nil, err
	}
	if cfg.JSONReportFile, err = cmd.Flags().GetString("json-report"); err != nil {
		return nil, err
	}
	if cfg.NoHistory, err = cmd.Flags().GetBool("no-history"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// Load per-host configuration. An explicitly specified file must
	// exist; an implicitly searched one may be absent.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Sites, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Sites = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	return cfg, nil
}

// runCrawl executes the crawl and writes all requested outputs.
func runCrawl(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	site := cfg.Sites.ForHost(cfg.SeedHost())

	// Site-specific settings override globals, matching how the config
	// file is meant to capture per-engagement defaults.
	depth := cfg.Depth
	if site.Depth > 0 {
		depth = site.Depth
	}
	userAgent := cfg.UserAgent
	if site.UserAgent != "" {
		userAgent = site.UserAgent
	}

	headers := make(map[string]string, len(site.Headers)+1)
	for k, v := range site.Headers {
		headers[k] = v
	}
	if site.Cookie != "" {
		headers["Cookie"] = site.Cookie
	}

	fetcherOpts := []crawler.FetcherOption{
		crawler.WithUserAgent(userAgent),
		crawler.WithMaxBodySize(config.DefaultMaxBodySize),
	}
	if len(headers) > 0 {
		fetcherOpts = append(fetcherOpts, crawler.WithHeaders(headers))
	}
	if user, pass, err := cfg.BasicAuth(); err != nil {
		return err
	} else if user != "" {
		fetcherOpts = append(fetcherOpts, crawler.WithBasicAuth(user, pass))
	}

	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := crawler.NewFetcher(client, fetcherOpts...)

	spider := crawler.NewSpider(fetcher,
		crawler.WithMaxDepth(depth),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithWorkers(cfg.Workers),
		crawler.WithIncludeMeta(cfg.IncludeMeta),
		crawler.WithFilter(wordlist.Filter{
			MinLength:   cfg.MinWordLength,
			MaxLength:   cfg.MaxWordLength,
			AllowDigits: cfg.AllowDigits,
		}),
		crawler.WithIgnorePatterns(site.IgnorePatterns),
		crawler.WithFollowPatterns(site.FollowPatterns),
		crawler.WithLogger(logger),
	)

	logger.Info("starting crawl",
		"seed", cfg.SeedURL,
		"depth", depth,
		"workers", cfg.Workers,
	)

	result, err := spider.Crawl(ctx, cfg.SeedURL)
	if err != nil {
		return err
	}

	if err := writeOutputs(cmd, cfg, result); err != nil {
		return err
	}

	if err := writeReports(cfg, result); err != nil {
		return err
	}

	// History failures are diagnostics, not crawl failures.
	if !cfg.NoHistory {
		if err := saveHistory(ctx, result); err != nil {
			logger.Warn("failed to save run history", "error", err)
		}
	}

	return nil
}

// writeOutputs writes the wordlist and email list per the configuration.
func writeOutputs(cmd *cobra.Command, cfg *config.Config, result *model.CrawlResult) error {
	if cfg.EmailFile != "" {
		if err := writeLines(cfg.EmailFile, result.Emails); err != nil {
			return fmt.Errorf("failed to write email file: %w", err)
		}
	}

	if cfg.EmailOnly {
		// The email set is the only output; the wordlist and its
		// formatter are bypassed entirely.
		if cfg.EmailFile == "" {
			for _, email := range result.Emails {
				fmt.Fprintln(cmd.OutOrStdout(), email)
			}
		}
		return nil
	}

	lines := wordlist.FormatLines(result.Words, cfg.ShowCounts)
	if cfg.OutputFile != "" {
		if err := writeLines(cfg.OutputFile, lines); err != nil {
			return fmt.Errorf("failed to write wordlist: %w", err)
		}
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// writeReports writes the optional Markdown and JSON crawl summaries.
func writeReports(cfg *config.Config, result *model.CrawlResult) error {
	if cfg.ReportFile != "" {
		f, err := createOutputFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		_, werr := report.NewMarkdownWriter(f).Write(result)
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
		if cerr != nil {
			return cerr
		}
	}

	if cfg.JSONReportFile != "" {
		f, err := createOutputFile(cfg.JSONReportFile)
		if err != nil {
			return err
		}
		_, werr := report.NewJSONWriter(f, report.WithPrettyPrint()).Write(result)
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("failed to write JSON report: %w", werr)
		}
		if cerr != nil {
			return cerr
		}
	}

	return nil
}

// saveHistory records the run in the history database.
func saveHistory(ctx context.Context, result *model.CrawlResult) error {
	db, err := history.Open(config.XDGDataDir(), history.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	_, err = db.SaveRun(saveCtx, result)
	return err
}

// writeLines writes lines to a file, one per line.
func writeLines(path string, lines []string) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// createOutputFile creates (or truncates) an output file, creating parent
// directories as needed. Generated wordlists and email lists can be
// sensitive for an engagement, so they are owner-readable only.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-chosen output path
}
