package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q) error: %v", s, err)
	}
	return d
}

func TestFeePeriod(t *testing.T) {
	fee := Fee{Year: 2026, Month: 3}
	if got := fee.Period(); got != "2026-03" {
		t.Fatalf("Period() expected 2026-03, got %s", got)
	}
}

func TestHouseFeeAmount_WeightsByCoefficient(t *testing.T) {
	fee := Fee{BaseAmount: mustDecimal(t, "350000")}
	cases := []struct {
		coefficient string
		expected    string
	}{
		{"1", "350000"},
		{"0.012500", "4375"},
		{"0.008333", "2916.55"},
	}
	for _, tc := range cases {
		got := fee.HouseFeeAmount(mustDecimal(t, tc.coefficient))
		if got.String() != tc.expected {
			t.Fatalf("HouseFeeAmount(%s) expected %s, got %s", tc.coefficient, tc.expected, got)
		}
	}
}

func TestAmountWithSurcharge(t *testing.T) {
	fee := Fee{
		BaseAmount:       mustDecimal(t, "100000"),
		SurchargePercent: mustDecimal(t, "5"),
		DueDate:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	one := mustDecimal(t, "1")

	cases := []struct {
		name     string
		paidAt   time.Time
		expected string
	}{
		{"before due date", time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), "100000"},
		{"on due date", time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), "100000"},
		{"day after due date", time.Date(2026, 3, 11, 0, 0, 1, 0, time.UTC), "105000"},
		{"much later", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), "105000"},
	}
	for _, tc := range cases {
		got := fee.AmountWithSurcharge(one, tc.paidAt)
		if got.String() != tc.expected {
			t.Fatalf("%s: AmountWithSurcharge expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestAmountWithSurcharge_ZeroPercentNeverCharges(t *testing.T) {
	fee := Fee{
		BaseAmount: mustDecimal(t, "100000"),
		DueDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	late := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	if got := fee.AmountWithSurcharge(mustDecimal(t, "1"), late); got.String() != "100000" {
		t.Fatalf("expected no surcharge when percent is zero, got %s", got)
	}
}
