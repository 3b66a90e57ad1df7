package elexon

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"settlementwatch/core/model"
)

// PeriodEntry mirrors one element of the Insights system-prices payload.
// The numeric fields stay raw until conversion so that one malformed value
// degrades a single field, not the whole day.
type PeriodEntry struct {
	SettlementDate     string          `json:"settlementDate"`
	SettlementPeriod   int             `json:"settlementPeriod"`
	StartTime          string          `json:"startTime"`
	SystemSellPrice    json.RawMessage `json:"systemSellPrice"`
	SystemBuyPrice     json.RawMessage `json:"systemBuyPrice"`
	NetImbalanceVolume json.RawMessage `json:"netImbalanceVolume"`
}

// Validate checks that the entry carries enough identity to be placed in a
// day: a parseable settlement date and a non-zero period number.
func (e PeriodEntry) Validate() error {
	if _, err := model.ParseSettlementDate(e.SettlementDate); err != nil {
		return err
	}
	if e.SettlementPeriod == 0 {
		return fmt.Errorf("settlementPeriod missing")
	}
	return nil
}

// ToRecord converts the entry into a core RawRecord. Since the single
// cash-out price reform the sell and buy prices carry the same value, so
// the sell price is taken as the period imbalance price with the buy price
// as fallback. Values that do not parse become the no-data sentinel; the
// normalizer reports them.
func (e PeriodEntry) ToRecord() (model.RawRecord, error) {
	date, err := model.ParseSettlementDate(e.SettlementDate)
	if err != nil {
		return model.RawRecord{}, err
	}
	price := parseDecimal(e.SystemSellPrice)
	if !price.Valid {
		price = parseDecimal(e.SystemBuyPrice)
	}
	return model.RawRecord{
		Date:   date,
		Period: model.SettlementPeriod(e.SettlementPeriod),
		Volume: parseDecimal(e.NetImbalanceVolume),
		Price:  price,
	}, nil
}

// parseDecimal interprets a raw JSON value as a decimal. Nulls, absent
// values and anything unparseable yield the invalid NullDecimal, never a
// coerced zero.
func parseDecimal(raw json.RawMessage) decimal.NullDecimal {
	s := string(raw)
	if s == "" || s == "null" {
		return decimal.NullDecimal{}
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return decimal.NullDecimal{}
		}
		s = unquoted
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
