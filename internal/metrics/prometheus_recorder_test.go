package metrics

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("assemble", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("assemble", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddDocuments("general", 3, 1)
	pr.IncOutput("written")
	pr.IncOutput("written")
	pr.ObserveSourceSync("aep", time.Second, true)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	counters := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				key := mf.GetName()
				for _, l := range m.GetLabel() {
					key += "," + l.GetValue()
				}
				counters[key] = c.GetValue()
			}
		}
	}
	assert.InDelta(t, 3, counters["aepsite_documents_total,general,assembled"], 0)
	assert.InDelta(t, 1, counters["aepsite_documents_total,general,skipped"], 0)
	assert.InDelta(t, 2, counters["aepsite_outputs_total,written"], 0)
	assert.InDelta(t, 1, counters["aepsite_build_outcomes_total,success"], 0)
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("x", time.Second)
		pr.IncOutput("written")
		pr.AddDocuments("general", 1, 0)
	})
}

func TestHTTPHandlerAndTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildOutcomeFailed)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `aepsite_build_outcomes_total{outcome="failed"} 1`)

	path := filepath.Join(t.TempDir(), "aepsite.prom")
	require.NoError(t, WriteTextfile(path, reg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "aepsite_build_outcomes_total")
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
