package model

import "github.com/shopspring/decimal"

// NormalizedSeries holds the two aligned half-hourly series for one
// settlement date. Both arrays always have exactly PeriodsPerDay entries:
// index 0 is period 1, index 47 is period 48. A slot whose NullDecimal is
// not Valid carries the no-data sentinel, which is distinct from a genuine
// zero reading. The series is immutable once produced by the normalizer.
type NormalizedSeries struct {
	Date    SettlementDate
	Volumes [PeriodsPerDay]decimal.NullDecimal
	Prices  [PeriodsPerDay]decimal.NullDecimal
}

// Volume returns the imbalance volume slot for the period. The period must
// be in range.
func (s *NormalizedSeries) Volume(p SettlementPeriod) decimal.NullDecimal {
	return s.Volumes[p.Index()]
}

// Price returns the imbalance price slot for the period. The period must be
// in range.
func (s *NormalizedSeries) Price(p SettlementPeriod) decimal.NullDecimal {
	return s.Prices[p.Index()]
}

// Complete reports whether the period has both a valid volume and a valid
// price. Only complete periods enter into cost aggregation.
func (s *NormalizedSeries) Complete(p SettlementPeriod) bool {
	i := p.Index()
	return s.Volumes[i].Valid && s.Prices[i].Valid
}

// CompleteCount returns the number of periods with both values present.
func (s *NormalizedSeries) CompleteCount() int {
	n := 0
	for p := SettlementPeriod(1); p <= PeriodsPerDay; p++ {
		if s.Complete(p) {
			n++
		}
	}
	return n
}
