package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/agriwater/optimizer/core/metrics"
)

// PromSink records optimization runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cost     *prometheus.GaugeVec
	savings  *prometheus.GaugeVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "irrigation_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"scenario", "kind", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "irrigation_solve_duration_seconds",
		Help:    "Wall-clock time spent solving one scenario",
		Buckets: prometheus.DefBuckets,
	}, []string{"scenario"})
	cost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "irrigation_schedule_cost",
		Help: "Total cost of the last schedule per scenario and kind",
	}, []string{"scenario", "kind"})
	savings := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "irrigation_savings_percent",
		Help: "Cost savings of the optimized schedule over the baseline",
	}, []string{"scenario"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(savings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			savings = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{runs: runs, duration: duration, cost: cost, savings: savings}, nil
}

// RecordRun increments the run counter and updates the cost gauges.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.runs.WithLabelValues(rec.Scenario, rec.Kind, rec.Status.String()).Inc()
	s.cost.WithLabelValues(rec.Scenario, rec.Kind).Set(rec.TotalCost)
	if rec.Kind == "optimized" {
		s.duration.WithLabelValues(rec.Scenario).Observe(rec.SolveTime.Seconds())
	}
	return nil
}

// RecordComparison updates the savings gauge.
func (s *PromSink) RecordComparison(rec coremetrics.ComparisonRecord) error {
	s.savings.WithLabelValues(rec.Scenario).Set(rec.CostSavingsPct)
	return nil
}

// StartPromServer exposes /metrics on the given port and blocks.
func StartPromServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
