// Package output writes generated files below a project root, fingerprints
// them with mdfp and records them in the build-state store.
package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/frontmatter"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/state"
)

// Outcome describes what happened to one output.
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeDryRun    Outcome = "dry_run"
)

// Summary counts outcomes across a build.
type Summary struct {
	Written   int
	Unchanged int
	DryRun    int
	Bytes     int
}

// Writer writes outputs. It is safe for concurrent use; callers never write
// the same path twice in one build.
type Writer struct {
	root    string
	buildID string
	dryRun  bool
	store   state.Store

	mu      sync.Mutex
	summary Summary
	paths   []string
}

// Option configures a Writer.
type Option func(*Writer)

// WithDryRun computes outcomes without touching the filesystem or the store.
func WithDryRun(dryRun bool) Option { return func(w *Writer) { w.dryRun = dryRun } }

// WithStore records fingerprints in store and reports unchanged outputs.
func WithStore(store state.Store) Option { return func(w *Writer) { w.store = store } }

// NewWriter returns a writer rooted at root for build buildID.
func NewWriter(root, buildID string, opts ...Option) *Writer {
	w := &Writer{root: root, buildID: buildID}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Fingerprint is the mdfp fingerprint of a generated file. Files with a YAML
// header hash header and body as separate parts.
func Fingerprint(data []byte) string {
	header, body, had, err := frontmatter.Split(data)
	if err != nil || !had {
		return mdfp.CalculateFingerprintFromParts("", string(data))
	}
	return mdfp.CalculateFingerprintFromParts(string(bytes.TrimSuffix(header, []byte("\n"))), string(body))
}

// Write stores data at rel, a slash-separated path below the root.
// Failures are filesystem errors; a build must stop on them.
func (w *Writer) Write(ctx context.Context, rel string, data []byte) (Outcome, error) {
	fp := Fingerprint(data)
	target := filepath.Join(w.root, filepath.FromSlash(rel))

	if w.dryRun {
		w.record(rel, OutcomeDryRun, len(data))
		observability.DebugContext(ctx, "Dry run, not writing", logfields.Path(rel), logfields.Bytes(len(data)))
		return OutcomeDryRun, nil
	}

	if w.unchanged(ctx, rel, target, fp) {
		w.record(rel, OutcomeUnchanged, 0)
		observability.DebugContext(ctx, "Output unchanged", logfields.Path(rel))
		return OutcomeUnchanged, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", errors.FileSystemError("failed to create output directory").
			WithContext("path", filepath.Dir(target)).WithContext("error", err.Error()).Build()
	}
	if err := os.WriteFile(target, data, 0o644); err != nil { //nolint:gosec // generated site files are world-readable
		return "", errors.FileSystemError("failed to write output").
			WithContext("path", target).WithContext("error", err.Error()).Build()
	}
	if w.store != nil {
		if err := w.store.RecordOutput(ctx, state.Output{Path: rel, Fingerprint: fp, BuildID: w.buildID}); err != nil {
			observability.WarnContext(ctx, "Failed to record output state", logfields.Path(rel), logfields.Error(err))
		}
	}
	w.record(rel, OutcomeWritten, len(data))
	observability.DebugContext(ctx, "Wrote output", logfields.Path(rel), logfields.Bytes(len(data)))
	return OutcomeWritten, nil
}

// Copy writes the contents of the file at src to rel.
func (w *Writer) Copy(ctx context.Context, src, rel string) (Outcome, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	return w.Write(ctx, rel, data)
}

func (w *Writer) unchanged(ctx context.Context, rel, target, fp string) bool {
	if w.store == nil {
		return false
	}
	prev, ok, err := w.store.Output(ctx, rel)
	if err != nil || !ok || prev.Fingerprint != fp {
		return false
	}
	current, err := os.ReadFile(target)
	if err != nil {
		return false
	}
	return Fingerprint(current) == fp
}

func (w *Writer) record(rel string, outcome Outcome, n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch outcome {
	case OutcomeWritten:
		w.summary.Written++
	case OutcomeUnchanged:
		w.summary.Unchanged++
	case OutcomeDryRun:
		w.summary.DryRun++
	}
	w.summary.Bytes += n
	w.paths = append(w.paths, rel)
}

// Summary returns the outcome counts so far.
func (w *Writer) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.summary
}

// Paths returns every path handled so far, in handling order.
func (w *Writer) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.paths...)
}

// IsWriteFailure reports whether err came from Write failing on disk.
func IsWriteFailure(err error) bool {
	return errors.HasCategory(err, errors.CategoryFileSystem)
}
