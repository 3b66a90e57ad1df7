// Package metrics defines the observability interfaces of the pipeline.
// Sinks record fetch attempts and pipeline runs; implementations live in
// infra/metrics and can be combined with a MultiSink.
package metrics

import (
	"time"

	"settlementwatch/core/model"
)

// FetchEvent captures one upstream fetch attempt.
type FetchEvent struct {
	Date     model.SettlementDate
	Records  int
	Duration time.Duration
	// Err is the error string, empty on success.
	Err string
}

// RunEvent captures one completed pipeline run.
type RunEvent struct {
	RunID           string
	Date            model.SettlementDate
	CompletePeriods int
	Warnings        int
	Duration        time.Duration
}

// MetricsSink records pipeline observability events.
type MetricsSink interface {
	RecordFetch(ev FetchEvent) error
	RecordRun(ev RunEvent) error
}

// DayRecorder is an optional sink capability: sinks that can store the full
// half-hourly series and summary implement it in addition to MetricsSink.
type DayRecorder interface {
	RecordDay(series *model.NormalizedSeries, summary model.DailySummary) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordFetch(FetchEvent) error { return nil }
func (NopSink) RecordRun(RunEvent) error     { return nil }
