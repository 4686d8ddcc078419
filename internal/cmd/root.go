package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for seek
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seek [path] [pattern]",
		Short: "Fast file search using glob or regex patterns",
		Long: `Seek walks a directory tree and streams matching files and directories
to the terminal as they are found, with a live status line showing progress.

Patterns are shell globs by default; pass --regex for regular expressions.
With a single argument, seek treats it as the search path when it names an
existing directory (matching everything under it), and as the pattern
otherwise (searching the current directory).

Examples:
  seek . "*.go"                  # glob search under the current directory
  seek /var/log "*.log"          # glob search under /var/log
  seek "*.md"                    # pattern only, path defaults to .
  seek /etc                      # path only, pattern defaults to *
  seek . "^mod_.*\.c$" --regex   # regex search
  seek . "*.go" --files-only -D 3
  seek . "*" --max-files 10000 --timeout 30`,
		Version: Version,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runSearch,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.seek/config.yaml)")

	cmd.Flags().BoolP("regex", "r", false, "Treat the pattern as a regular expression instead of a glob")
	cmd.Flags().BoolP("path", "p", false, "Match the pattern against the full path instead of the filename")
	cmd.Flags().BoolP("files-only", "f", false, "Only show files (not directories)")
	cmd.Flags().BoolP("dirs-only", "d", false, "Only show directories (not files)")
	cmd.Flags().UintP("max-depth", "D", 0, "Maximum search depth (0 = unlimited)")
	cmd.Flags().IntP("max-files", "n", 500000, "Maximum number of files to scan (0 = unlimited)")
	cmd.Flags().Int64P("timeout", "t", 600, "Search timeout in seconds (0 = no timeout)")
	cmd.Flags().BoolP("show-permission-errors", "e", false, "Show permission errors (they are skipped either way)")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("verbose", false, "Log diagnostic detail to stderr and the log directory")

	// Add subcommands
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}
