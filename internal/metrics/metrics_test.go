package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.IterationDone(0, 120.5)
	r.IterationDone(1, 98.25)
	r.RepairInfeasible()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.iterations))
	assert.Equal(t, 98.25, testutil.ToFloat64(r.bestFitness))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.infeasibleRepairs))
}

func TestRecorderIndependentRegistries(t *testing.T) {
	// Two recorders in one process must not collide on registration.
	a := NewRecorder()
	b := NewRecorder()
	a.IterationDone(0, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.iterations))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.iterations))
}

func TestHandlerExposition(t *testing.T) {
	r := NewRecorder()
	r.IterationDone(0, 42)
	r.ObserveRunDuration(250 * time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, "slapso_iterations_total")
	assert.Contains(t, out, "slapso_best_fitness 42")
	assert.Contains(t, out, "slapso_run_duration_seconds_count 1")
}
