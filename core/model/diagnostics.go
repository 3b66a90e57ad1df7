package model

import "fmt"

// WarningKind classifies a normalization diagnostic.
type WarningKind int

const (
	// WarnForeignDate marks a record carrying a different settlement date
	// than the one requested.
	WarnForeignDate WarningKind = iota
	// WarnPeriodRange marks a record whose period lies outside [1,48].
	WarnPeriodRange
	// WarnMissingValue marks a period whose volume or price was absent or
	// unparseable in the source data.
	WarnMissingValue
	// WarnDuplicate marks a period supplied by more than one record.
	WarnDuplicate
	// WarnSparseDay marks a day with fewer complete periods than the
	// configured minimum.
	WarnSparseDay
)

func (k WarningKind) String() string {
	switch k {
	case WarnForeignDate:
		return "foreign_date"
	case WarnPeriodRange:
		return "period_range"
	case WarnMissingValue:
		return "missing_value"
	case WarnDuplicate:
		return "duplicate"
	case WarnSparseDay:
		return "sparse_day"
	default:
		return "unknown"
	}
}

// Warning is a recovered data-quality problem. Warnings are data returned
// alongside the series; they never abort the pipeline.
type Warning struct {
	Kind   WarningKind
	Period SettlementPeriod // zero when not tied to a period
	Detail string
}

func (w Warning) String() string {
	if w.Period.Valid() {
		return fmt.Sprintf("%s p%02d: %s", w.Kind, w.Period, w.Detail)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// Diagnostics accumulates warnings for one normalization run.
type Diagnostics struct {
	Warnings []Warning
}

// Add appends a warning.
func (d *Diagnostics) Add(kind WarningKind, period SettlementPeriod, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{
		Kind:   kind,
		Period: period,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Count returns the number of warnings of the given kind.
func (d *Diagnostics) Count(kind WarningKind) int {
	n := 0
	for _, w := range d.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
