package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"settlementwatch/core/aggregate"
	"settlementwatch/core/model"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func sampleSeries(t *testing.T) model.NormalizedSeries {
	t.Helper()
	date, err := model.ParseSettlementDate("2024-03-15")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	series := model.NormalizedSeries{Date: date}
	series.Volumes[0] = nd("10")
	series.Prices[0] = nd("50")
	series.Volumes[5] = nd("-2.5")
	series.Prices[5] = nd("80")
	return series
}

func TestNewSummaryDocDefined(t *testing.T) {
	series := sampleSeries(t)
	doc := NewSummaryDoc(aggregate.New().Summarize(&series))

	if doc.TotalCost != "150" { // 50*10*0.5 - 80*2.5*0.5
		t.Errorf("total cost = %s", doc.TotalCost)
	}
	if doc.UnitRate == nil || *doc.UnitRate != "24" { // 150 / 6.25
		t.Errorf("unit rate = %v", doc.UnitRate)
	}
	if doc.PeakPeriod == nil || *doc.PeakPeriod != 1 {
		t.Errorf("peak period = %v", doc.PeakPeriod)
	}
	if doc.IncludedPeriods != 2 {
		t.Errorf("included periods = %d", doc.IncludedPeriods)
	}
}

func TestNewSummaryDocUndefined(t *testing.T) {
	date, _ := model.ParseSettlementDate("2024-03-15")
	series := model.NormalizedSeries{Date: date}
	doc := NewSummaryDoc(aggregate.New().Summarize(&series))

	if doc.UnitRate != nil {
		t.Errorf("unit rate should be null, got %v", *doc.UnitRate)
	}
	if doc.PeakPeriod != nil || doc.PeakVolumeMWh != nil {
		t.Errorf("peak should be null")
	}
	if doc.TotalCost != "0" {
		t.Errorf("total cost = %s", doc.TotalCost)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	series := sampleSeries(t)
	var buf bytes.Buffer
	if err := WriteSeriesCSV(&buf, &series); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != model.PeriodsPerDay+1 {
		t.Fatalf("csv lines = %d", len(lines))
	}
	if lines[0] != "period,start_time,volume_mwh,price" {
		t.Errorf("header = %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,2024-03-15T00:00:00Z,10,50") {
		t.Errorf("row 1 = %s", lines[1])
	}
	// Sentinel period leaves its cells empty.
	if !strings.HasPrefix(lines[2], "2,2024-03-15T00:30:00Z,,") {
		t.Errorf("row 2 = %s", lines[2])
	}
}

func TestPriceStatistics(t *testing.T) {
	series := sampleSeries(t)
	stats, ok := PriceStatistics(&series)
	if !ok {
		t.Fatalf("expected stats")
	}
	if stats.Mean != 65 || stats.Min != 50 || stats.Max != 80 {
		t.Errorf("stats = %+v", stats)
	}

	empty := model.NormalizedSeries{}
	if _, ok := PriceStatistics(&empty); ok {
		t.Errorf("stats on empty series")
	}
}

func TestWriteTextReport(t *testing.T) {
	series := sampleSeries(t)
	summary := aggregate.New().Summarize(&series)
	var diags model.Diagnostics
	diags.Add(model.WarnSparseDay, 0, "2 of 48 periods complete")

	var buf bytes.Buffer
	if err := WriteTextReport(&buf, &series, summary, diags); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Settlement date 2024-03-15",
		"Total daily imbalance cost: 150.00",
		"Unit rate: 24.00 per MWh",
		"period 1",
		"1 warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
