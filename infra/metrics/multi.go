package metrics

import (
	coremetrics "settlementwatch/core/metrics"
	"settlementwatch/core/model"
)

// MultiSink fans pipeline events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFetch forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordFetch(ev coremetrics.FetchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordFetch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards the event to all sinks.
func (m *MultiSink) RecordRun(ev coremetrics.RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordDay forwards the day series to sinks supporting it.
func (m *MultiSink) RecordDay(series *model.NormalizedSeries, summary model.DailySummary) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DayRecorder); ok {
			if err := rec.RecordDay(series, summary); err != nil {
				return err
			}
		}
	}
	return nil
}
