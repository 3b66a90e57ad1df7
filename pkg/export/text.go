package export

import (
	"fmt"
	"io"

	"settlementwatch/core/model"
)

// WriteTextReport renders the headline statistics and the half-hourly
// table as plain text.
func WriteTextReport(w io.Writer, series *model.NormalizedSeries, summary model.DailySummary, diags model.Diagnostics) error {
	fmt.Fprintf(w, "Settlement date %s\n", summary.Date)
	fmt.Fprintf(w, "Total daily imbalance cost: %s\n", summary.TotalCost.StringFixed(2))
	if summary.HasUnitRate() {
		fmt.Fprintf(w, "Unit rate: %s per MWh\n", summary.UnitRate.Decimal.StringFixed(2))
	} else {
		fmt.Fprintln(w, "Unit rate: undefined (no traded volume)")
	}
	if summary.HasPeak() {
		fmt.Fprintf(w, "Peak imbalance: period %d (%s), %s MWh\n",
			summary.PeakPeriod,
			summary.Date.PeriodStart(summary.PeakPeriod).Format("15:04"),
			summary.PeakVolume.Decimal.StringFixed(3))
	} else {
		fmt.Fprintln(w, "Peak imbalance: no data")
	}
	fmt.Fprintf(w, "Periods included: %d of %d\n", summary.IncludedPeriods, model.PeriodsPerDay)
	if stats, ok := PriceStatistics(series); ok {
		fmt.Fprintf(w, "Price mean/min/max: %.2f / %.2f / %.2f\n", stats.Mean, stats.Min, stats.Max)
	}

	fmt.Fprintf(w, "\n%-7s %-6s %12s %10s\n", "period", "start", "volume_mwh", "price")
	for _, row := range NewSeriesRows(series) {
		vol, price := "-", "-"
		if row.VolumeMWh != nil {
			vol = *row.VolumeMWh
		}
		if row.Price != nil {
			price = *row.Price
		}
		fmt.Fprintf(w, "%-7d %-6s %12s %10s\n", row.Period, row.StartTime[11:16], vol, price)
	}

	if len(diags.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d warnings:\n", len(diags.Warnings))
		for _, warn := range diags.Warnings {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
	return nil
}
