package model

import "github.com/shopspring/decimal"

// DailySummary is the aggregate view of one settlement date. TotalCost is
// the sum of price x volume x 0.5h over periods where both values were
// observed. UnitRate and the peak fields are explicit "undefined" values
// (invalid NullDecimal, zero period) when no valid data supports them;
// they are never fabricated or silently zeroed.
type DailySummary struct {
	Date SettlementDate
	// TotalCost in currency. Zero when no period qualified.
	TotalCost decimal.Decimal
	// TradedEnergy is the sum of |volume| x 0.5h over qualifying periods,
	// in MWh. It is the divisor of UnitRate.
	TradedEnergy decimal.Decimal
	// UnitRate is TotalCost / TradedEnergy, undefined when TradedEnergy is
	// zero.
	UnitRate decimal.NullDecimal
	// PeakPeriod is the period with the largest absolute volume, ties
	// resolved to the earliest period. Zero when no period had a volume.
	PeakPeriod SettlementPeriod
	// PeakVolume is the signed volume at PeakPeriod.
	PeakVolume decimal.NullDecimal
	// IncludedPeriods counts the periods that entered TotalCost.
	IncludedPeriods int
}

// HasPeak reports whether a peak-imbalance period could be determined.
func (s DailySummary) HasPeak() bool { return s.PeakPeriod.Valid() }

// HasUnitRate reports whether the unit rate is defined.
func (s DailySummary) HasUnitRate() bool { return s.UnitRate.Valid }
