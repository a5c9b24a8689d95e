package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/aepsite/internal/notify"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/output"
	"git.home.luguber.info/inful/aepsite/internal/state"
)

// EditionReport counts the documents of one edition.
type EditionReport struct {
	Name      string
	Assembled int
	Skipped   int
	// Written counts documents whose category is a known group.
	Written int
}

// SkippedDocument is a document folder that could not be assembled.
type SkippedDocument struct {
	Edition string
	Folder  string
	Error   string
}

// Report describes one build.
type Report struct {
	BuildID   string
	Status    BuildStatus
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Editions  []EditionReport
	Skipped   []SkippedDocument
	Warnings  []string
	Outputs   output.Summary
	// Error is the cause of a failed build.
	Error string
}

// warn logs msg and records it.
func (r *Report) warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	observability.WarnContext(ctx, msg, attrs...)
	entry := msg
	for _, a := range attrs {
		entry += fmt.Sprintf(" %s=%s", a.Key, a.Value.String())
	}
	r.Warnings = append(r.Warnings, entry)
}

// Documents is the number of documents written across editions.
func (r *Report) Documents() int {
	n := 0
	for _, e := range r.Editions {
		n += e.Written
	}
	return n
}

// Event converts r for notification.
func (r *Report) Event() notify.Event {
	docs := make(map[string]int, len(r.Editions))
	for _, e := range r.Editions {
		docs[e.Name] = e.Written
	}
	var errs []string
	if r.Error != "" {
		errs = append(errs, r.Error)
	}
	return notify.Event{
		BuildID:    r.BuildID,
		Status:     string(r.Status),
		StartedAt:  r.StartTime,
		DurationMS: r.Duration.Milliseconds(),
		Documents:  docs,
		Skipped:    len(r.Skipped),
		Written:    r.Outputs.Written,
		Unchanged:  r.Outputs.Unchanged,
		Errors:     errs,
	}
}

// stateBuild converts r for the state store.
func (r *Report) stateBuild() state.Build {
	status := state.BuildStatusCompleted
	if !r.Status.IsSuccess() {
		status = state.BuildStatusFailed
	}
	return state.Build{
		ID:        r.BuildID,
		Status:    status,
		StartedAt: r.StartTime,
		Duration:  r.Duration,
		Documents: r.Documents(),
		Skipped:   len(r.Skipped),
		Written:   r.Outputs.Written,
		Unchanged: r.Outputs.Unchanged,
	}
}
