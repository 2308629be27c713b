package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkobayashi/webwords/internal/config"
	"github.com/mkobayashi/webwords/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past crawl runs",
		Long: `History lists crawl runs recorded in the local database, newest first.
With --run, the stored top words of a single run are shown instead.

Runs are recorded automatically unless crawl is invoked with
--no-history.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to list")
	cmd.Flags().Int64P("run", "r", 0, "Show the stored top words of the given run ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := history.Open(config.XDGDataDir(), opts)
	if err != nil {
		if errors.Is(err, history.ErrDatabaseNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No crawl history recorded yet.")
			return nil
		}
		return err
	}
	defer db.Close()

	if runID > 0 {
		return showRunWords(cmd, db, runID)
	}
	return listRuns(cmd, db, limit)
}

// listRuns prints recorded runs as a table, newest first.
func listRuns(cmd *cobra.Command, db *history.DB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl history recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tSTARTED\tELAPSED\tPAGES\tFAILED\tWORDS\tEMAILS")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Seed,
			run.StartedAt.Local().Format(time.DateTime),
			run.Elapsed.Round(time.Millisecond),
			run.PagesFetched,
			run.PagesFailed,
			run.UniqueWords,
			run.EmailCount,
		)
	}
	return w.Flush()
}

// showRunWords prints the stored top words of a single run.
func showRunWords(cmd *cobra.Command, db *history.DB, runID int64) error {
	words, err := db.TopWords(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No words stored for run %d.\n", runID)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tWORD\tCOUNT")
	for i, word := range words {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, word.Word, word.Count)
	}
	return w.Flush()
}
