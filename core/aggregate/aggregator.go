// Package aggregate derives the daily summary from a normalized series.
// It is a pure computation: no I/O, no retained state, safe to call from
// concurrent pipeline runs.
package aggregate

import (
	"github.com/shopspring/decimal"

	"settlementwatch/core/model"
)

// Each settlement period covers half an hour, so MWh quantities are the
// MW figures scaled by 0.5.
var halfHour = decimal.NewFromFloat(0.5)

// Aggregator computes DailySummary values.
type Aggregator struct{}

// New creates an Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Summarize rolls one normalized series up into a DailySummary.
//
// Only periods with both a valid price and a valid volume contribute to
// TotalCost and TradedEnergy; a no-data period contributes nothing, which
// is not the same as contributing zero. The peak search considers every
// period with a valid volume, price or not, and resolves equal magnitudes
// to the earliest period. When nothing qualifies, UnitRate and the peak
// fields stay in their explicit undefined states.
func (a *Aggregator) Summarize(series *model.NormalizedSeries) model.DailySummary {
	summary := model.DailySummary{Date: series.Date}

	totalCost := decimal.Zero
	traded := decimal.Zero
	var peakAbs decimal.Decimal

	for p := model.SettlementPeriod(1); p <= model.PeriodsPerDay; p++ {
		i := p.Index()
		vol := series.Volumes[i]
		price := series.Prices[i]

		if vol.Valid && price.Valid {
			totalCost = totalCost.Add(price.Decimal.Mul(vol.Decimal).Mul(halfHour))
			traded = traded.Add(vol.Decimal.Abs().Mul(halfHour))
			summary.IncludedPeriods++
		}

		if vol.Valid {
			abs := vol.Decimal.Abs()
			if !summary.PeakPeriod.Valid() || abs.GreaterThan(peakAbs) {
				summary.PeakPeriod = p
				summary.PeakVolume = vol
				peakAbs = abs
			}
		}
	}

	summary.TotalCost = totalCost
	summary.TradedEnergy = traded
	if traded.IsPositive() {
		summary.UnitRate = decimal.NullDecimal{Decimal: totalCost.Div(traded), Valid: true}
	}
	return summary
}
