package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "settlementwatch/core/metrics"
)

// PromSink records pipeline events in Prometheus metrics.
type PromSink struct {
	fetches       *prometheus.CounterVec
	fetchDur      prometheus.Histogram
	runs          prometheus.Counter
	runDur        prometheus.Histogram
	completeSlots prometheus.Gauge
	warnings      prometheus.Counter
}

// NewPromSink registers pipeline metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_fetches_total",
		Help: "Total upstream fetch attempts",
	}, []string{"outcome"})
	fetchDur := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_fetch_duration_seconds",
		Help:    "Duration of upstream fetch attempts",
		Buckets: prometheus.DefBuckets,
	})
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_pipeline_runs_total",
		Help: "Total pipeline runs",
	})
	runDur := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_pipeline_duration_seconds",
		Help:    "Duration of full pipeline runs",
		Buckets: prometheus.DefBuckets,
	})
	completeSlots := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "settlement_complete_periods",
		Help: "Complete settlement periods in the most recent run",
	})
	warnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_normalization_warnings_total",
		Help: "Total normalization warnings across runs",
	})

	collectors := []prometheus.Collector{fetches, fetchDur, runs, runDur, completeSlots, warnings}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				collectors[i] = are.ExistingCollector
			} else {
				return nil, err
			}
		}
	}
	fetches = collectors[0].(*prometheus.CounterVec)
	fetchDur = collectors[1].(prometheus.Histogram)
	runs = collectors[2].(prometheus.Counter)
	runDur = collectors[3].(prometheus.Histogram)
	completeSlots = collectors[4].(prometheus.Gauge)
	warnings = collectors[5].(prometheus.Counter)

	return &PromSink{
		fetches:       fetches,
		fetchDur:      fetchDur,
		runs:          runs,
		runDur:        runDur,
		completeSlots: completeSlots,
		warnings:      warnings,
	}, nil
}

// RecordFetch counts the fetch attempt and observes its duration.
func (s *PromSink) RecordFetch(ev coremetrics.FetchEvent) error {
	outcome := "ok"
	if ev.Err != "" {
		outcome = "error"
	}
	s.fetches.WithLabelValues(outcome).Inc()
	s.fetchDur.Observe(ev.Duration.Seconds())
	return nil
}

// RecordRun counts the run and tracks data completeness.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.Inc()
	s.runDur.Observe(ev.Duration.Seconds())
	s.completeSlots.Set(float64(ev.CompletePeriods))
	s.warnings.Add(float64(ev.Warnings))
	return nil
}
