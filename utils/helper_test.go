package utils

import (
	"testing"
	"time"
)

func TestIsValidTaxId(t *testing.T) {
	cases := []struct {
		in       string
		expected bool
	}{
		{"900123456-7", true},
		{"800987654", true},
		{"  900123456-7  ", true},
		{"", false},
		{"   ", false},
		{"NIT 900123456", false},
		{"900.123.456", false},
	}
	for _, tc := range cases {
		if got := IsValidTaxId(tc.in); got != tc.expected {
			t.Fatalf("IsValidTaxId(%q) expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		in       string
		expected bool
	}{
		{"admin@altavista.co", true},
		{"first.last+tag@example.com", true},
		{"no-at-sign", false},
		{"missing@tld", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.in); got != tc.expected {
			t.Fatalf("IsValidEmail(%q) expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

func TestGetMonthRange(t *testing.T) {
	start, end := GetMonthRange(2026, time.February)
	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %s", start)
	}
	if !end.Equal(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("unexpected end: %s", end)
	}
}

func TestGetQuarterRange(t *testing.T) {
	cases := []struct {
		month      time.Month
		startMonth time.Month
		endDay     int
		endMonth   time.Month
	}{
		{time.January, time.January, 31, time.March},
		{time.March, time.January, 31, time.March},
		{time.May, time.April, 30, time.June},
		{time.December, time.October, 31, time.December},
	}
	for _, tc := range cases {
		start, end := GetQuarterRange(2026, tc.month)
		if start.Month() != tc.startMonth || start.Day() != 1 {
			t.Fatalf("month %s: unexpected quarter start %s", tc.month, start)
		}
		if end.Month() != tc.endMonth || end.Day() != tc.endDay {
			t.Fatalf("month %s: unexpected quarter end %s", tc.month, end)
		}
	}
}

func TestGetStartAndEndDate_InvalidFilter(t *testing.T) {
	if _, _, err := GetStartAndEndDate("lastDecade"); err == nil {
		t.Fatalf("expected error for unknown filter type")
	}
}

func TestNilIfEmpty(t *testing.T) {
	if got := NilIfEmpty(""); got != nil {
		t.Fatalf("empty string should map to nil")
	}
	if got := NilIfEmpty("x"); got == nil || *got != "x" {
		t.Fatalf("non-empty string should round trip")
	}
	if got := NilIfEmpty(0); got != nil {
		t.Fatalf("zero int should map to nil")
	}
}

func TestDereferencePtr(t *testing.T) {
	v := 7
	if got := DereferencePtr(&v); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := DereferencePtr[int](nil); got != 0 {
		t.Fatalf("expected zero value, got %d", got)
	}
	if got := DereferencePtr[int](nil, 3); got != 3 {
		t.Fatalf("expected default 3, got %d", got)
	}
}
