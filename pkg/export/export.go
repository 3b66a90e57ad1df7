// Package export renders the pipeline's two value objects - the normalized
// series and the daily summary - into stable presenter formats: JSON
// documents, CSV tables and a plain-text report. It never reaches back
// into the pipeline.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"settlementwatch/core/model"
)

// SummaryDoc is the stable JSON shape of a daily summary. Undefined
// metrics serialize as null, never as zero.
type SummaryDoc struct {
	Date            string  `json:"date"`
	TotalCost       string  `json:"total_cost"`
	TradedEnergyMWh string  `json:"traded_energy_mwh"`
	UnitRate        *string `json:"unit_rate"`
	PeakPeriod      *int    `json:"peak_period"`
	PeakVolumeMWh   *string `json:"peak_volume_mwh"`
	IncludedPeriods int     `json:"included_periods"`
}

// NewSummaryDoc converts a DailySummary into its document form.
func NewSummaryDoc(s model.DailySummary) SummaryDoc {
	doc := SummaryDoc{
		Date:            s.Date.String(),
		TotalCost:       s.TotalCost.String(),
		TradedEnergyMWh: s.TradedEnergy.String(),
		IncludedPeriods: s.IncludedPeriods,
	}
	if s.HasUnitRate() {
		v := s.UnitRate.Decimal.String()
		doc.UnitRate = &v
	}
	if s.HasPeak() {
		p := int(s.PeakPeriod)
		doc.PeakPeriod = &p
		v := s.PeakVolume.Decimal.String()
		doc.PeakVolumeMWh = &v
	}
	return doc
}

// SeriesRow is one settlement period of the series document.
type SeriesRow struct {
	Period    int     `json:"period"`
	StartTime string  `json:"start_time"`
	VolumeMWh *string `json:"volume_mwh"`
	Price     *string `json:"price"`
}

// NewSeriesRows converts a series into its 48 document rows. Sentinel
// slots become nulls.
func NewSeriesRows(series *model.NormalizedSeries) []SeriesRow {
	rows := make([]SeriesRow, 0, model.PeriodsPerDay)
	for p := model.SettlementPeriod(1); p <= model.PeriodsPerDay; p++ {
		row := SeriesRow{
			Period:    int(p),
			StartTime: series.Date.PeriodStart(p).Format(time.RFC3339),
		}
		if vol := series.Volume(p); vol.Valid {
			v := vol.Decimal.String()
			row.VolumeMWh = &v
		}
		if price := series.Price(p); price.Valid {
			v := price.Decimal.String()
			row.Price = &v
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteSummaryJSON writes the summary document to w.
func WriteSummaryJSON(w io.Writer, summary model.DailySummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSummaryDoc(summary))
}

// WriteSeriesJSON writes the series rows to w.
func WriteSeriesJSON(w io.Writer, series *model.NormalizedSeries) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSeriesRows(series))
}

// WriteSeriesCSV writes the series as CSV with a header row. Sentinel
// slots become empty cells.
func WriteSeriesCSV(w io.Writer, series *model.NormalizedSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "start_time", "volume_mwh", "price"}); err != nil {
		return err
	}
	for _, row := range NewSeriesRows(series) {
		rec := []string{fmt.Sprintf("%d", row.Period), row.StartTime, "", ""}
		if row.VolumeMWh != nil {
			rec[2] = *row.VolumeMWh
		}
		if row.Price != nil {
			rec[3] = *row.Price
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
