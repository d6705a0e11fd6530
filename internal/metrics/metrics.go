// Package metrics exposes Prometheus instrumentation for placement runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements the optimizer's progress hook on top of Prometheus
// collectors. All methods are safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	iterations        prometheus.Counter
	bestFitness       prometheus.Gauge
	infeasibleRepairs prometheus.Counter
	runDuration       prometheus.Histogram
}

// NewRecorder builds a Recorder with its own registry, so multiple runs
// in one process never collide on collector registration.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slapso_iterations_total",
			Help: "Optimizer iterations completed.",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slapso_best_fitness",
			Help: "Fitness of the best assignment found so far.",
		}),
		infeasibleRepairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slapso_infeasible_repairs_total",
			Help: "Particle repairs that could not restore feasibility.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slapso_run_duration_seconds",
			Help:    "Wall-clock duration of placement runs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
	r.registry.MustRegister(r.iterations, r.bestFitness, r.infeasibleRepairs, r.runDuration)
	return r
}

// IterationDone counts a completed iteration and tracks the global best.
func (r *Recorder) IterationDone(_ int, bestFitness float64) {
	r.iterations.Inc()
	r.bestFitness.Set(bestFitness)
}

// RepairInfeasible counts an unrepairable particle assignment.
func (r *Recorder) RepairInfeasible() {
	r.infeasibleRepairs.Inc()
}

// ObserveRunDuration records the wall-clock duration of a finished run.
func (r *Recorder) ObserveRunDuration(d time.Duration) {
	r.runDuration.Observe(d.Seconds())
}

// Handler serves the recorder's registry in the Prometheus exposition
// format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
