// Package pipeline orchestrates one settlement date through fetch,
// normalization and aggregation. Each run is independent and stateless, so
// callers may run several dates concurrently with separate invocations.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"settlementwatch/core/aggregate"
	"settlementwatch/core/logger"
	coremetrics "settlementwatch/core/metrics"
	"settlementwatch/core/model"
	"settlementwatch/core/normalize"
)

// Fetcher retrieves raw settlement records for one date. Implementations
// must honour the context deadline and return a distinguishable error on
// timeout rather than hanging.
type Fetcher interface {
	Fetch(ctx context.Context, date model.SettlementDate) ([]model.RawRecord, error)
}

// Result bundles the two value objects of one run together with its
// diagnostics. Series and Summary are always populated, even when the
// fetch failed outright: a failed fetch yields a sentinel-filled day.
type Result struct {
	RunID       string
	Date        model.SettlementDate
	Series      model.NormalizedSeries
	Summary     model.DailySummary
	Diagnostics model.Diagnostics
	// FetchErr is the upstream error, unchanged, when the fetch failed.
	FetchErr error
}

// Runner executes the pipeline for single dates.
type Runner struct {
	fetcher      Fetcher
	normalizer   *normalize.Normalizer
	aggregator   *aggregate.Aggregator
	sink         coremetrics.MetricsSink
	log          logger.Logger
	fetchTimeout time.Duration
}

// NewRunner wires a Runner. A nil sink disables metrics.
func NewRunner(fetcher Fetcher, cfg normalize.Config, sink coremetrics.MetricsSink, log logger.Logger, fetchTimeout time.Duration) *Runner {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Runner{
		fetcher:      fetcher,
		normalizer:   normalize.New(cfg),
		aggregator:   aggregate.New(),
		sink:         sink,
		log:          log,
		fetchTimeout: fetchTimeout,
	}
}

// Run processes one settlement date. A zero date is a caller error and
// fails fast. Upstream failures do not: the run continues with zero
// records and reports the fetch error on the Result, so presenters always
// receive a complete 48-slot series.
func (r *Runner) Run(ctx context.Context, date model.SettlementDate) (*Result, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("settlement date is required")
	}
	runID := uuid.NewString()
	started := time.Now()

	fetchCtx := ctx
	if r.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.fetchTimeout)
		defer cancel()
	}
	records, fetchErr := r.fetcher.Fetch(fetchCtx, date)
	fetchDur := time.Since(started)
	if fetchErr != nil {
		r.log.Warnf("fetch %s failed, continuing with empty day: %v", date, fetchErr)
		records = nil
	}
	errStr := ""
	if fetchErr != nil {
		errStr = fetchErr.Error()
	}
	if err := r.sink.RecordFetch(coremetrics.FetchEvent{
		Date:     date,
		Records:  len(records),
		Duration: fetchDur,
		Err:      errStr,
	}); err != nil {
		r.log.Errorf("record fetch metrics: %v", err)
	}

	series, diags := r.normalizer.Normalize(date, records)
	summary := r.aggregator.Summarize(&series)

	res := &Result{
		RunID:       runID,
		Date:        date,
		Series:      series,
		Summary:     summary,
		Diagnostics: diags,
		FetchErr:    fetchErr,
	}

	if err := r.sink.RecordRun(coremetrics.RunEvent{
		RunID:           runID,
		Date:            date,
		CompletePeriods: series.CompleteCount(),
		Warnings:        len(diags.Warnings),
		Duration:        time.Since(started),
	}); err != nil {
		r.log.Errorf("record run metrics: %v", err)
	}
	if rec, ok := r.sink.(coremetrics.DayRecorder); ok {
		if err := rec.RecordDay(&series, summary); err != nil {
			r.log.Errorf("record day series: %v", err)
		}
	}

	r.log.Debugw("pipeline run complete", map[string]any{
		"run_id":           runID,
		"date":             date.String(),
		"records":          len(records),
		"complete_periods": series.CompleteCount(),
		"warnings":         len(diags.Warnings),
	})
	return res, nil
}
