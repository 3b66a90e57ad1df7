package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	coremetrics "settlementwatch/core/metrics"
	"settlementwatch/core/model"
	"settlementwatch/core/normalize"
)

type stubFetcher struct {
	records []model.RawRecord
	err     error
	gotDate model.SettlementDate
}

func (f *stubFetcher) Fetch(ctx context.Context, date model.SettlementDate) ([]model.RawRecord, error) {
	f.gotDate = date
	return f.records, f.err
}

type recordingSink struct {
	fetches []coremetrics.FetchEvent
	runs    []coremetrics.RunEvent
	days    int
}

func (s *recordingSink) RecordFetch(ev coremetrics.FetchEvent) error { s.fetches = append(s.fetches, ev); return nil }
func (s *recordingSink) RecordRun(ev coremetrics.RunEvent) error     { s.runs = append(s.runs, ev); return nil }
func (s *recordingSink) RecordDay(*model.NormalizedSeries, model.DailySummary) error {
	s.days++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestRunHappyPath(t *testing.T) {
	date, _ := model.ParseSettlementDate("2024-03-15")
	fetcher := &stubFetcher{records: []model.RawRecord{
		{Date: date, Period: 1, Volume: nd("10"), Price: nd("50")},
	}}
	sink := &recordingSink{}
	r := NewRunner(fetcher, normalize.Config{}, sink, nopLogger{}, time.Second)

	res, err := r.Run(context.Background(), date)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !fetcher.gotDate.Equal(date) {
		t.Errorf("fetcher got date %s", fetcher.gotDate)
	}
	if res.RunID == "" {
		t.Errorf("missing run id")
	}
	if !res.Summary.TotalCost.Equal(decimal.RequireFromString("250")) {
		t.Errorf("total cost = %s", res.Summary.TotalCost)
	}
	if len(sink.fetches) != 1 || len(sink.runs) != 1 || sink.days != 1 {
		t.Errorf("sink events: %d fetches, %d runs, %d days", len(sink.fetches), len(sink.runs), sink.days)
	}
	if sink.runs[0].CompletePeriods != 1 {
		t.Errorf("complete periods reported %d", sink.runs[0].CompletePeriods)
	}
}

func TestRunFetchFailureYieldsSentinelDay(t *testing.T) {
	date, _ := model.ParseSettlementDate("2024-03-15")
	boom := errors.New("upstream down")
	sink := &recordingSink{}
	r := NewRunner(&stubFetcher{err: boom}, normalize.Config{}, sink, nopLogger{}, time.Second)

	res, err := r.Run(context.Background(), date)
	if err != nil {
		t.Fatalf("run should not fail on fetch error: %v", err)
	}
	if !errors.Is(res.FetchErr, boom) {
		t.Errorf("fetch error not surfaced unchanged: %v", res.FetchErr)
	}
	if res.Series.CompleteCount() != 0 {
		t.Errorf("series should be all sentinel")
	}
	if res.Summary.HasPeak() || res.Summary.HasUnitRate() {
		t.Errorf("summary should report no data")
	}
	if sink.fetches[0].Err == "" {
		t.Errorf("fetch event should carry the error")
	}
}

func TestRunZeroDateFailsFast(t *testing.T) {
	r := NewRunner(&stubFetcher{}, normalize.Config{}, nil, nopLogger{}, time.Second)
	if _, err := r.Run(context.Background(), model.SettlementDate{}); err == nil {
		t.Fatalf("zero date accepted")
	}
}

func TestRunIndependentAcrossDates(t *testing.T) {
	d1, _ := model.ParseSettlementDate("2024-03-15")
	d2, _ := model.ParseSettlementDate("2024-03-16")
	fetcher := &stubFetcher{records: []model.RawRecord{
		{Date: d1, Period: 1, Volume: nd("5"), Price: nd("10")},
	}}
	r := NewRunner(fetcher, normalize.Config{}, nil, nopLogger{}, time.Second)

	first, err := r.Run(context.Background(), d1)
	if err != nil {
		t.Fatalf("run d1: %v", err)
	}
	// Same records are foreign for the second date and must be dropped.
	second, err := r.Run(context.Background(), d2)
	if err != nil {
		t.Fatalf("run d2: %v", err)
	}
	if first.Series.CompleteCount() != 1 {
		t.Errorf("first day complete count = %d", first.Series.CompleteCount())
	}
	if second.Series.CompleteCount() != 0 {
		t.Errorf("second day should be empty, got %d", second.Series.CompleteCount())
	}
	if second.Diagnostics.Count(model.WarnForeignDate) != 1 {
		t.Errorf("foreign date not flagged")
	}
}
