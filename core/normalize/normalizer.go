// Package normalize turns irregular source records into the canonical
// 48-period daily series. Whatever the upstream feed delivered - nothing,
// a partial day, duplicates, records for the wrong day - the output is
// always two aligned 48-slot series with explicit no-data sentinels, plus
// diagnostics describing everything that was dropped or missing.
package normalize

import (
	"math"

	"settlementwatch/core/model"
)

// Normalizer builds NormalizedSeries values from raw records.
type Normalizer struct {
	cfg Config
}

// New creates a Normalizer with the given configuration.
func New(cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Normalize maps records onto the 48 settlement periods of date.
//
// Records for another date or with an out-of-range period are dropped with
// a warning. When several records target the same period the last one in
// the input sequence wins wholesale, replacing both values of the earlier
// record; the collision is recorded as a duplicate warning. A period with
// no surviving record, or whose volume or price did not parse, keeps the
// no-data sentinel in the affected slots.
//
// Normalize is deterministic for a given input sequence and never fails:
// even an empty input yields a complete sentinel-filled series.
func (n *Normalizer) Normalize(date model.SettlementDate, records []model.RawRecord) (model.NormalizedSeries, model.Diagnostics) {
	series := model.NormalizedSeries{Date: date}
	var diags model.Diagnostics

	var seen [model.PeriodsPerDay]bool
	for _, rec := range records {
		if !rec.Date.Equal(date) {
			diags.Add(model.WarnForeignDate, 0, "record for %s ignored", rec.Date)
			continue
		}
		if !rec.Period.Valid() {
			diags.Add(model.WarnPeriodRange, 0, "period %d outside [1,%d]", rec.Period, model.PeriodsPerDay)
			continue
		}
		i := rec.Period.Index()
		if seen[i] {
			diags.Add(model.WarnDuplicate, rec.Period, "later record replaces earlier one")
		}
		seen[i] = true
		series.Volumes[i] = rec.Volume
		series.Prices[i] = rec.Price
	}

	// Missing-value warnings are attached to periods a record claimed but
	// could not fully populate. Wholly absent periods are visible through
	// the sentinel itself and the sparse-day check below.
	for p := model.SettlementPeriod(1); p <= model.PeriodsPerDay; p++ {
		i := p.Index()
		if !seen[i] {
			continue
		}
		if !series.Volumes[i].Valid {
			diags.Add(model.WarnMissingValue, p, "volume absent or unparseable")
		}
		if !series.Prices[i].Valid {
			diags.Add(model.WarnMissingValue, p, "price absent or unparseable")
		}
	}

	minComplete := int(math.Ceil(n.cfg.MinCompleteFraction * model.PeriodsPerDay))
	if complete := series.CompleteCount(); complete < minComplete {
		diags.Add(model.WarnSparseDay, 0, "%d of %d periods complete, minimum %d", complete, model.PeriodsPerDay, minComplete)
	}

	return series, diags
}
