package model

import "github.com/shopspring/decimal"

// RawRecord is a single source observation for one settlement period. It is
// typed but not yet trusted: the date may not match the requested day, the
// period may be out of range and either value may be absent. The normalizer
// decides what survives into the canonical series.
type RawRecord struct {
	Date   SettlementDate
	Period SettlementPeriod
	// Volume is the net imbalance volume in MWh, signed. Positive means the
	// system was short, negative long. Invalid when the source value was
	// missing or unparseable.
	Volume decimal.NullDecimal
	// Price is the imbalance price in currency per MWh. Invalid when the
	// source value was missing or unparseable.
	Price decimal.NullDecimal
}
