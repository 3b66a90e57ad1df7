package model

import (
	"testing"
	"time"
)

func TestParseSettlementDate(t *testing.T) {
	d, err := ParseSettlementDate("2024-03-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024-03-15" {
		t.Errorf("round trip got %s", d)
	}
	if _, err := ParseSettlementDate("2024-13-40"); err == nil {
		t.Errorf("nonsense date accepted")
	}
	if _, err := ParseSettlementDate("15/03/2024"); err == nil {
		t.Errorf("wrong layout accepted")
	}
}

func TestPeriodStart(t *testing.T) {
	d, _ := ParseSettlementDate("2024-03-15")
	got := d.PeriodStart(3)
	want := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("period 3 start = %v, want %v", got, want)
	}
}

func TestSettlementPeriodValid(t *testing.T) {
	for _, p := range []SettlementPeriod{1, 24, 48} {
		if !p.Valid() {
			t.Errorf("period %d should be valid", p)
		}
	}
	for _, p := range []SettlementPeriod{0, -1, 49, 50} {
		if p.Valid() {
			t.Errorf("period %d should be invalid", p)
		}
	}
}
