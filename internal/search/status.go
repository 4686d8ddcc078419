package search

// StatusKind identifies the variant of a StatusEvent.
type StatusKind int

// Status event variants, a closed set. Consumers switch exhaustively on
// Kind; StatusDone is always the final event on a status stream.
const (
	StatusCurrentPath StatusKind = iota
	StatusFileCount
	StatusPermissionErrors
	StatusTimeout
	StatusLimitReached
	StatusDone
)

// StatusEvent is a tagged progress event from the traversal worker. Only
// the fields for the given Kind are meaningful.
type StatusEvent struct {
	Kind    StatusKind
	Path    string // StatusCurrentPath: the text to show on the status line
	Count   int    // StatusFileCount: scanned; StatusPermissionErrors: total; StatusLimitReached: cap
	Cap     int    // StatusFileCount: configured cap (0 = unlimited)
	Seconds int64  // StatusTimeout: the configured timeout
}

// CurrentPathEvent reports the path or message to show on the status line.
func CurrentPathEvent(text string) StatusEvent {
	return StatusEvent{Kind: StatusCurrentPath, Path: text}
}

// FileCountEvent reports traversal progress against the configured cap.
func FileCountEvent(scanned, limit int) StatusEvent {
	return StatusEvent{Kind: StatusFileCount, Count: scanned, Cap: limit}
}

// PermissionErrorsEvent reports the running permission-denied tally.
func PermissionErrorsEvent(count int) StatusEvent {
	return StatusEvent{Kind: StatusPermissionErrors, Count: count}
}

// TimeoutEvent reports that the configured timeout expired.
func TimeoutEvent(seconds int64) StatusEvent {
	return StatusEvent{Kind: StatusTimeout, Seconds: seconds}
}

// LimitReachedEvent reports that the file-scan cap was hit.
func LimitReachedEvent(limit int) StatusEvent {
	return StatusEvent{Kind: StatusLimitReached, Count: limit}
}

// DoneEvent signals the end of the status stream.
func DoneEvent() StatusEvent {
	return StatusEvent{Kind: StatusDone}
}
