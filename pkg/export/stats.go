package export

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"settlementwatch/core/model"
)

// PriceStats describes the distribution of the valid imbalance prices of a
// day. Values are approximate floats for display only; money math stays in
// decimals.
type PriceStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// PriceStatistics computes price distribution stats over the valid slots.
// ok is false when the day has no valid price at all.
func PriceStatistics(series *model.NormalizedSeries) (PriceStats, bool) {
	var prices []float64
	for p := model.SettlementPeriod(1); p <= model.PeriodsPerDay; p++ {
		if price := series.Price(p); price.Valid {
			prices = append(prices, price.Decimal.InexactFloat64())
		}
	}
	if len(prices) == 0 {
		return PriceStats{}, false
	}
	return PriceStats{
		Mean: stat.Mean(prices, nil),
		Min:  floats.Min(prices),
		Max:  floats.Max(prices),
	}, true
}
