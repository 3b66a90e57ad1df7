package model

import "time"

// SettlementPeriod identifies one of the 48 fixed half-hour intervals of a
// GB trading day. Period 1 starts at local midnight.
type SettlementPeriod int

// PeriodsPerDay is the number of settlement periods in a trading day.
// Clock-change days nominally have 46 or 50; the pipeline always works on a
// 48-slot day and rejects periods outside the range.
const PeriodsPerDay = 48

// PeriodDuration is the length of one settlement period.
const PeriodDuration = 30 * time.Minute

// Valid reports whether p lies in [1, PeriodsPerDay].
func (p SettlementPeriod) Valid() bool {
	return p >= 1 && p <= PeriodsPerDay
}

// Index returns the zero-based series index for the period.
func (p SettlementPeriod) Index() int {
	return int(p) - 1
}

// StartOffset returns the offset of the period start from midnight.
func (p SettlementPeriod) StartOffset() time.Duration {
	return time.Duration(p-1) * PeriodDuration
}
