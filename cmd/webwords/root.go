package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webwords.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webwords",
		Short: "Generate custom wordlists from website content",
		Long: `webwords crawls a website up to a bounded depth, staying on the seed's
host, and produces a ranked wordlist from the visible page text. It can
also collect email addresses found anywhere in the crawled pages.

The wordlist is ranked by occurrence count, most frequent first, with
deterministic tie-breaking, making it suitable as input for password
audits and content analysis.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
