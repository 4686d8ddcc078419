package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/seek/internal/config"
	"github.com/harrison/seek/internal/display"
	"github.com/harrison/seek/internal/history"
	"github.com/harrison/seek/internal/logger"
	"github.com/harrison/seek/internal/matcher"
	"github.com/harrison/seek/internal/search"
)

// loadConfig loads the configuration honoring the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolvePathPattern turns the positional arguments into a search path and
// pattern. With a single argument, an existing directory is taken as the
// path (pattern defaults to everything); anything else is taken as the
// pattern (path defaults to the current directory).
func resolvePathPattern(args []string) (string, string) {
	if len(args) == 2 {
		return args[0], args[1]
	}

	token := args[0]
	if info, err := os.Stat(token); err == nil && info.IsDir() {
		return token, "*"
	}
	return ".", token
}

// runSearch implements the root command: build the matcher, spawn the
// traversal worker, drive the display loop, and report the final summary.
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	useRegex, _ := cmd.Flags().GetBool("regex")
	fullPath, _ := cmd.Flags().GetBool("path")
	filesOnly, _ := cmd.Flags().GetBool("files-only")
	dirsOnly, _ := cmd.Flags().GetBool("dirs-only")
	maxDepth, _ := cmd.Flags().GetUint("max-depth")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// CLI flags override config file settings when explicitly set.
	maxFiles := cfg.MaxFiles
	if cmd.Flags().Changed("max-files") {
		maxFiles, _ = cmd.Flags().GetInt("max-files")
	}
	timeoutSeconds := int64(cfg.TimeoutSeconds)
	if cmd.Flags().Changed("timeout") {
		timeoutSeconds, _ = cmd.Flags().GetInt64("timeout")
	}
	showPermissionErrors := cfg.ShowPermissionErrors
	if flagged, _ := cmd.Flags().GetBool("show-permission-errors"); flagged {
		showPermissionErrors = true
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || cfg.NoColor {
		color.NoColor = true
	}
	if maxFiles < 0 {
		return fmt.Errorf("max-files must be >= 0, got %d", maxFiles)
	}
	if timeoutSeconds < 0 {
		return fmt.Errorf("timeout must be >= 0, got %d", timeoutSeconds)
	}

	path, pattern := resolvePathPattern(args)

	// Pattern compilation is the only hard failure before traversal.
	m, err := matcher.New(pattern, useRegex)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := newRunLogger(cfg, runID, verbose)
	defer log.Close()
	log.Debug("run %s: path=%q pattern=%q regex=%v", runID, path, pattern, useRegex)

	searcher := search.NewSearcher(m, search.Config{
		BasePath:             path,
		MaxDepth:             int(maxDepth),
		MaxFiles:             maxFiles,
		Timeout:              time.Duration(timeoutSeconds) * time.Second,
		FilesOnly:            filesOnly,
		DirsOnly:             dirsOnly,
		ShowPermissionErrors: showPermissionErrors,
		FullPath:             fullPath,
	}, log)

	results, status := searcher.Search()

	d := display.NewDisplayManager()
	tally := d.ProcessResults(results, status)

	// The consumer's tallies plus the searcher's clock are the final word.
	result := &search.Result{
		Matches:          tally.Found,
		FilesScanned:     tally.FilesScanned,
		PermissionErrors: tally.PermissionErrors,
		Elapsed:          searcher.Elapsed(),
		LimitReached:     tally.LimitReached,
		TimedOut:         tally.TimedOut,
	}

	d.Finish(result, path)
	display.PermissionHint(os.Stdout, result.PermissionErrors, path, pattern, runtime.GOOS == "darwin")

	recordHistory(cfg, log, runID, path, pattern, useRegex, result)

	return nil
}

// newRunLogger builds the diagnostic logger for one run. Verbose mode logs
// debug detail to stderr and mirrors it to a per-run file; otherwise
// logging is discarded so it never disturbs the display.
func newRunLogger(cfg *config.Config, runID string, verbose bool) *logger.Logger {
	if !verbose {
		return logger.New(nil, cfg.LogLevel)
	}

	log, err := logger.NewWithFile(os.Stderr, "debug", cfg.LogDir, runID)
	if err != nil {
		fallback := logger.New(os.Stderr, "debug")
		fallback.Warn("file logging disabled: %v", err)
		return fallback
	}
	return log
}

// recordHistory persists the run outcome. Best-effort: failures are logged
// and never affect the search's exit status.
func recordHistory(cfg *config.Config, log *logger.Logger, runID, path, pattern string, useRegex bool, result *search.Result) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.Warn("history disabled for this run: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Prune(cfg.History.KeepDays); err != nil {
		log.Warn("history prune failed: %v", err)
	}

	entry := history.Search{
		RunID:            runID,
		Root:             path,
		Pattern:          pattern,
		Regex:            useRegex,
		Matches:          result.Matches,
		FilesScanned:     result.FilesScanned,
		PermissionErrors: result.PermissionErrors,
		Elapsed:          result.Elapsed,
		LimitReached:     result.LimitReached,
		TimedOut:         result.TimedOut,
		StartedAt:        time.Now().Add(-result.Elapsed),
	}
	if err := store.Record(entry); err != nil {
		log.Warn("history record failed: %v", err)
	}
}
