package state

import (
	"context"
	"errors"
	"time"
)

// ErrBuildNotFound is returned when no build has been recorded yet.
var ErrBuildNotFound = errors.New("no build recorded")

// BuildStatus is the outcome of a build.
type BuildStatus string

const (
	BuildStatusCompleted BuildStatus = "completed"
	BuildStatusFailed    BuildStatus = "failed"
)

// Build summarizes one run.
type Build struct {
	ID        string
	Status    BuildStatus
	StartedAt time.Time
	Duration  time.Duration
	Documents int
	Skipped   int
	Written   int
	Unchanged int
}

// Output is the last recorded state of one generated file.
type Output struct {
	Path        string
	Fingerprint string
	BuildID     string
	UpdatedAt   time.Time
}

// Store is the persistence the build needs.
type Store interface {
	// Output returns the recorded state of path; ok is false when none exists.
	Output(ctx context.Context, path string) (out Output, ok bool, err error)
	RecordOutput(ctx context.Context, out Output) error
	RecordBuild(ctx context.Context, b Build) error
	LastBuild(ctx context.Context) (Build, error)
	Close() error
}
