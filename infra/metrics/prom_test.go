package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "settlementwatch/core/metrics"
	"settlementwatch/core/model"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	date, _ := model.ParseSettlementDate("2024-03-15")

	if err := sink.RecordFetch(coremetrics.FetchEvent{Date: date, Records: 48, Duration: 120 * time.Millisecond}); err != nil {
		t.Fatalf("record fetch: %v", err)
	}
	if err := sink.RecordFetch(coremetrics.FetchEvent{Date: date, Err: "boom"}); err != nil {
		t.Fatalf("record fetch error: %v", err)
	}
	if err := sink.RecordRun(coremetrics.RunEvent{RunID: "r", Date: date, CompletePeriods: 40, Warnings: 8}); err != nil {
		t.Fatalf("record run: %v", err)
	}

	if got := testutil.ToFloat64(sink.fetches.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok fetches = %v", got)
	}
	if got := testutil.ToFloat64(sink.fetches.WithLabelValues("error")); got != 1 {
		t.Errorf("error fetches = %v", got)
	}
	if got := testutil.ToFloat64(sink.completeSlots); got != 40 {
		t.Errorf("complete periods gauge = %v", got)
	}
	if got := testutil.ToFloat64(sink.warnings); got != 8 {
		t.Errorf("warnings counter = %v", got)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
