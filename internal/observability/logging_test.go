package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextAttributes(t *testing.T) {
	buf := captureDefault(t)

	ctx := WithBuildID(context.Background(), "b-1")
	ctx = WithStage(ctx, "assemble")
	ctx = WithEdition(ctx, "general")
	WarnContext(ctx, "document skipped", slog.String("folder", "aep/general/0133"))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "build_id=b-1")
	assert.Contains(t, out, "stage=assemble")
	assert.Contains(t, out, "edition=general")
	assert.Contains(t, out, "folder=aep/general/0133")
	assert.Equal(t, "b-1", BuildID(ctx))
}

func TestContextAttributes_Empty(t *testing.T) {
	buf := captureDefault(t)

	DebugContext(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "build_id")
	assert.Empty(t, BuildID(context.Background()))
}
