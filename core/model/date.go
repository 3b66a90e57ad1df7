package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// SettlementDate is a calendar day in the GB market, with no time component.
type SettlementDate struct {
	t time.Time
}

// NewSettlementDate builds a SettlementDate from a time, discarding the
// clock component.
func NewSettlementDate(t time.Time) SettlementDate {
	y, m, d := t.Date()
	return SettlementDate{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseSettlementDate parses a YYYY-MM-DD string. A string that does not
// denote a real calendar day is a caller error and is rejected.
func ParseSettlementDate(s string) (SettlementDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return SettlementDate{}, fmt.Errorf("invalid settlement date %q: %w", s, err)
	}
	return SettlementDate{t: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d SettlementDate) String() string {
	return d.t.Format(dateLayout)
}

// Time returns midnight UTC of the settlement date.
func (d SettlementDate) Time() time.Time { return d.t }

// IsZero reports whether the date is the zero value.
func (d SettlementDate) IsZero() bool { return d.t.IsZero() }

// Equal reports whether two dates denote the same calendar day.
func (d SettlementDate) Equal(other SettlementDate) bool {
	return d.t.Equal(other.t)
}

// PeriodStart returns the wall-clock start of the given settlement period
// on this date.
func (d SettlementDate) PeriodStart(p SettlementPeriod) time.Time {
	return d.t.Add(p.StartOffset())
}
