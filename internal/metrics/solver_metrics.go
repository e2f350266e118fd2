// Package metrics instruments a long-running search the way the teacher
// instruments HTTP traffic: a prometheus.Registry with a handful of gauges,
// registered once at construction and updated from the single search driver
// goroutine via solver.ProgressSink.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SolverMetrics tracks one search run's progress: current generation,
// best-penalty-so-far, population median penalty, and a counter of
// generations completed.
type SolverMetrics struct {
	registry          *prometheus.Registry
	handler           http.Handler
	currentGeneration prometheus.Gauge
	bestPenalty       prometheus.Gauge
	medianPenalty     prometheus.Gauge
	generationsTotal  prometheus.Counter
}

// NewSolverMetrics registers the GA progress collectors.
func NewSolverMetrics() *SolverMetrics {
	registry := prometheus.NewRegistry()

	currentGeneration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_current_generation",
		Help: "Index of the generation the search driver most recently completed",
	})
	bestPenalty := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_best_penalty",
		Help: "Lowest penalty observed so far in this run",
	})
	medianPenalty := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_median_penalty",
		Help: "Population median penalty for the most recently completed generation",
	})
	generationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solver_generations_total",
		Help: "Total number of generations completed",
	})

	registry.MustRegister(currentGeneration, bestPenalty, medianPenalty, generationsTotal)

	return &SolverMetrics{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		currentGeneration: currentGeneration,
		bestPenalty:       bestPenalty,
		medianPenalty:     medianPenalty,
		generationsTotal:  generationsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler for internal/httpserver's
// /metrics route.
func (m *SolverMetrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Generation implements solver.ProgressSink.
func (m *SolverMetrics) Generation(generation int, bestPenalty int, medianPenalty float64) {
	if m == nil {
		return
	}
	m.currentGeneration.Set(float64(generation))
	m.bestPenalty.Set(float64(bestPenalty))
	m.medianPenalty.Set(medianPenalty)
	m.generationsTotal.Inc()
}
