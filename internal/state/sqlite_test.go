package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOutputs(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, ok, err := s.Output(ctx, "src/content/docs/133.mdx")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.RecordOutput(ctx, Output{Path: "src/content/docs/133.mdx", Fingerprint: "a", BuildID: "b1"}))
	require.NoError(t, s.RecordOutput(ctx, Output{Path: "src/content/docs/133.mdx", Fingerprint: "b", BuildID: "b2"}))

	out, ok, err := s.Output(ctx, "src/content/docs/133.mdx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", out.Fingerprint)
	assert.Equal(t, "b2", out.BuildID)
	assert.False(t, out.UpdatedAt.IsZero())
}

func TestBuilds(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.LastBuild(ctx)
	assert.ErrorIs(t, err, ErrBuildNotFound)

	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordBuild(ctx, Build{ID: "b1", Status: BuildStatusCompleted, StartedAt: start, Duration: 2 * time.Second, Documents: 3}))
	require.NoError(t, s.RecordBuild(ctx, Build{ID: "b2", Status: BuildStatusFailed, StartedAt: start.Add(time.Hour), Duration: 1500 * time.Millisecond, Skipped: 1}))

	last, err := s.LastBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, Build{ID: "b2", Status: BuildStatusFailed, StartedAt: start.Add(time.Hour), Duration: 1500 * time.Millisecond, Skipped: 1}, last)
}

func TestInMemoryStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.RecordOutput(ctx, Output{Path: "p", Fingerprint: "f", BuildID: "b"}))
	_, ok, err := s.Output(ctx, "p")
	require.NoError(t, err)
	assert.True(t, ok)
}
