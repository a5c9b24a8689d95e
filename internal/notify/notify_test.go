package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/aepsite/internal/config"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	p, err := New(config.NotifyConfig{})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	require.NoError(t, p.Publish(context.Background(), Event{BuildID: "b1"}))
	p.Close()
}

func TestNew_UnreachableServer(t *testing.T) {
	_, err := New(config.NotifyConfig{URL: "nats://127.0.0.1:1", Subject: "aepsite.build.completed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestEncode(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := Encode(Event{
		BuildID:    "b1",
		Status:     "completed",
		StartedAt:  started,
		DurationMS: 1500,
		Documents:  map[string]int{"general": 120},
		Skipped:    2,
		Written:    10,
		Unchanged:  115,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "b1", got["build_id"])
	assert.Equal(t, "2026-03-01T12:00:00Z", got["started_at"])
	assert.InDelta(t, 120, got["documents"].(map[string]any)["general"], 0)
	assert.NotContains(t, got, "errors")
}
