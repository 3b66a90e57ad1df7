package elexon

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPeriodEntryValidate(t *testing.T) {
	entry := PeriodEntry{
		SettlementDate:   "2024-03-15",
		SettlementPeriod: 12,
	}
	if err := entry.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	bad := entry
	bad.SettlementDate = "not-a-date"
	if err := bad.Validate(); err == nil {
		t.Errorf("invalid date not detected")
	}
	bad = entry
	bad.SettlementPeriod = 0
	if err := bad.Validate(); err == nil {
		t.Errorf("missing period not detected")
	}
}

func TestToRecordPriceFallback(t *testing.T) {
	entry := PeriodEntry{
		SettlementDate:     "2024-03-15",
		SettlementPeriod:   5,
		SystemSellPrice:    json.RawMessage("null"),
		SystemBuyPrice:     json.RawMessage("61.5"),
		NetImbalanceVolume: json.RawMessage("-12.25"),
	}
	rec, err := entry.ToRecord()
	if err != nil {
		t.Fatalf("to record: %v", err)
	}
	if !rec.Price.Valid || !rec.Price.Decimal.Equal(decimal.RequireFromString("61.5")) {
		t.Errorf("buy price fallback missing: %v", rec.Price)
	}
	if !rec.Volume.Decimal.Equal(decimal.RequireFromString("-12.25")) {
		t.Errorf("volume = %v", rec.Volume)
	}
	if rec.Period != 5 {
		t.Errorf("period = %d", rec.Period)
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
		want  string
	}{
		{"42.5", true, "42.5"},
		{`"42.5"`, true, "42.5"},
		{"-0.001", true, "-0.001"},
		{"0", true, "0"},
		{"null", false, ""},
		{"", false, ""},
		{`"n/a"`, false, ""},
		{"[1]", false, ""},
		{"true", false, ""},
	}
	for _, c := range cases {
		got := parseDecimal(json.RawMessage(c.raw))
		if got.Valid != c.valid {
			t.Errorf("parseDecimal(%q).Valid = %v, want %v", c.raw, got.Valid, c.valid)
			continue
		}
		if c.valid && !got.Decimal.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("parseDecimal(%q) = %v, want %s", c.raw, got.Decimal, c.want)
		}
	}
}
