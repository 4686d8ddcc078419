package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/seek/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Long: `Show recently recorded searches: when they ran, what they looked for,
and how they ended.

Recording can be turned off with history.enabled: false in the config file.

Examples:
  seek history              # last 20 searches
  seek history --limit 5    # last 5 searches
  seek history clear        # forget everything`,
		RunE: runHistoryList,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum number of entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded searches",
		RunE:  runHistoryClear,
	})

	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No searches recorded yet.")
		return nil
	}

	cyan := color.New(color.FgCyan)
	for _, entry := range entries {
		mode := "glob"
		if entry.Regex {
			mode = "regex"
		}

		outcome := ""
		switch {
		case entry.TimedOut:
			outcome = " [timed out]"
		case entry.LimitReached:
			outcome = " [file limit]"
		}

		cyan.Fprintf(out, "%s  %s %q in %s\n",
			entry.StartedAt.Local().Format("2006-01-02 15:04:05"), mode, entry.Pattern, entry.Root)
		fmt.Fprintf(out, "    %d matches, %d scanned, %s%s\n",
			entry.Matches, entry.FilesScanned, entry.Elapsed.Round(100*time.Millisecond), outcome)
	}

	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Search history cleared.")
	return nil
}
