// Package search implements the producer side of seek's search pipeline: a
// single background worker that walks a directory tree in two phases
// (collect, then match) while streaming matches and progress events to the
// caller through unbounded non-blocking queues.
package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/seek/internal/logger"
	"github.com/harrison/seek/internal/matcher"
)

// Config holds the immutable parameters of one search run.
type Config struct {
	// BasePath is the root of the traversal.
	BasePath string

	// MaxDepth bounds descent below BasePath (0 = unlimited; 1 = direct
	// children only).
	MaxDepth int

	// MaxFiles caps the number of scanned items (0 = unlimited).
	MaxFiles int

	// Timeout bounds wall-clock time for the whole run (0 = none).
	Timeout time.Duration

	// FilesOnly retains only regular files; DirsOnly retains only
	// directories. Setting both filters everything out.
	FilesOnly bool
	DirsOnly  bool

	// ShowPermissionErrors surfaces each permission-denied path on the
	// status line.
	ShowPermissionErrors bool

	// FullPath matches the pattern against the whole path instead of the
	// entry name.
	FullPath bool
}

// Result is the final aggregate of a search run.
type Result struct {
	Matches          int
	FilesScanned     int
	PermissionErrors int
	OtherErrors      int
	Elapsed          time.Duration
	LimitReached     bool
	TimedOut         bool
}

// Searcher runs the two-phase traversal worker. The matcher and config are
// shared immutably with the worker goroutine; all counters live inside the
// worker and reach the consumer only through the queues.
type Searcher struct {
	matcher matcher.EntryMatcher
	cfg     Config
	log     *logger.Logger

	// start is the single clock handle for the whole operation: timeout
	// checks in both phases and final elapsed-time aggregation all read it.
	start time.Time

	mu     sync.Mutex
	result *Result
}

// NewSearcher creates a Searcher and captures the operation's start time.
// Construction never fails: pattern validity was already checked when the
// matcher was built.
func NewSearcher(m matcher.EntryMatcher, cfg Config, log *logger.Logger) *Searcher {
	return &Searcher{
		matcher: m,
		cfg:     cfg,
		log:     log,
		start:   time.Now(),
	}
}

// Elapsed returns wall-clock time since the searcher was created.
func (s *Searcher) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Result returns the worker's final aggregate. It is set strictly before
// the Done event is emitted, so it is safe to read once the consumer has
// observed Done; before that it is nil.
func (s *Searcher) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Search spawns the traversal worker and immediately returns the two event
// streams: matched paths in discovery order, and status events in emission
// order. The worker never blocks on send; consumers must poll with TryPop.
func (s *Searcher) Search() (*Queue[string], *Queue[StatusEvent]) {
	results := NewQueue[string]()
	status := NewQueue[StatusEvent]()

	status.Push(CurrentPathEvent("Starting search..."))

	go s.run(results, status)

	return results, status
}

// run executes both phases and terminates the status stream with Done.
func (s *Searcher) run(results *Queue[string], status *Queue[StatusEvent]) {
	var (
		fileCount        int
		permissionErrors int
		otherErrors      int
		matchCount       int
		limitReached     bool
		timedOut         bool
	)

	// Phase 1: walk the tree, counting every yielded item (errors
	// included) and retaining entries that pass the type filter.
	var retained []string

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if s.cfg.Timeout > 0 && time.Since(s.start) > s.cfg.Timeout {
			timedOut = true
			status.Push(TimeoutEvent(int64(s.cfg.Timeout / time.Second)))
			return fs.SkipAll
		}

		fileCount++
		if s.cfg.MaxFiles > 0 && fileCount >= s.cfg.MaxFiles {
			limitReached = true
			status.Push(LimitReachedEvent(s.cfg.MaxFiles))
			return fs.SkipAll
		}

		if fileCount%1000 == 0 || (s.cfg.MaxFiles > 0 && s.cfg.MaxFiles-fileCount < 1000) {
			status.Push(FileCountEvent(fileCount, s.cfg.MaxFiles))
		}

		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				permissionErrors++
				if s.cfg.ShowPermissionErrors {
					status.Push(CurrentPathEvent(fmt.Sprintf("Permission denied: %s", path)))
				}
				if permissionErrors%10 == 0 {
					status.Push(PermissionErrorsEvent(permissionErrors))
				}
			} else {
				otherErrors++
				s.log.Debug("traversal error at %s: %v", path, err)
			}
			return nil
		}

		if d.IsDir() {
			if rel := s.relPath(path); rel != "" && fileCount%100 == 0 {
				status.Push(CurrentPathEvent(rel))
			}
		}

		if matcher.ShouldInclude(d.Type(), s.cfg.FilesOnly, s.cfg.DirsOnly) {
			retained = append(retained, path)
		}

		if s.cfg.MaxDepth > 0 && d.IsDir() && s.depth(path) >= s.cfg.MaxDepth {
			return fs.SkipDir
		}
		return nil
	}

	if err := filepath.WalkDir(s.cfg.BasePath, walkFn); err != nil {
		// SkipAll and SkipDir are swallowed by WalkDir; anything else is a
		// per-entry condition already absorbed by the callback.
		s.log.Debug("walk ended with error: %v", err)
	}

	status.Push(FileCountEvent(fileCount, s.cfg.MaxFiles))
	status.Push(PermissionErrorsEvent(permissionErrors))

	// Phase 2: match retained entries in collection order, streaming each
	// hit the moment it is found.
	status.Push(CurrentPathEvent(fmt.Sprintf("Searching %d files...", len(retained))))

	for _, path := range retained {
		if limitReached || timedOut {
			break
		}
		if s.cfg.Timeout > 0 && time.Since(s.start) > s.cfg.Timeout {
			timedOut = true
			break
		}

		if s.matcher.Match(path, s.cfg.FullPath) {
			matchCount++
			results.Push(path)

			if matchCount%10 == 0 {
				status.Push(CurrentPathEvent(fmt.Sprintf("Found %d matches so far...", matchCount)))
			}
		}
	}

	s.mu.Lock()
	s.result = &Result{
		Matches:          matchCount,
		FilesScanned:     fileCount,
		PermissionErrors: permissionErrors,
		OtherErrors:      otherErrors,
		Elapsed:          time.Since(s.start),
		LimitReached:     limitReached,
		TimedOut:         timedOut,
	}
	s.mu.Unlock()

	status.Push(DoneEvent())
}

// relPath returns path relative to the base path, or "" for the base path
// itself.
func (s *Searcher) relPath(path string) string {
	rel, err := filepath.Rel(s.cfg.BasePath, path)
	if err != nil || rel == "." {
		return ""
	}
	return rel
}

// depth returns how many levels below the base path an entry sits: the base
// path is 0, its children are 1.
func (s *Searcher) depth(path string) int {
	rel := s.relPath(path)
	if rel == "" {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}
