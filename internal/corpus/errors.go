package corpus

import "errors"

var (
	// ErrNotConfigured indicates a source location is empty.
	ErrNotConfigured = errors.New("source not configured")

	// ErrSourceMissing indicates a configured source directory does not exist.
	ErrSourceMissing = errors.New("source directory not found")

	// ErrGroupFile indicates the category scope file could not be read or parsed.
	ErrGroupFile = errors.New("group file unreadable")

	// ErrGlobFailed indicates a discovery pattern could not be evaluated.
	ErrGlobFailed = errors.New("discovery glob failed")
)
