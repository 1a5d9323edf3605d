package models

import (
	"testing"
	"time"
)

func TestWorkedHours(t *testing.T) {
	day := func(hour, minute int) *time.Time {
		v := time.Date(2026, 2, 10, hour, minute, 0, 0, time.UTC)
		return &v
	}
	cases := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
		expected string
	}{
		{"normal shift", day(8, 0), day(17, 30), "9.5"},
		{"short shift", day(9, 0), day(9, 45), "0.75"},
		// Overnight guard shift: check-out clock time is before check-in.
		{"overnight shift", day(22, 0), day(6, 0), "8"},
		{"no check-in", nil, day(17, 0), "0"},
		{"no check-out", day(8, 0), nil, "0"},
	}
	for _, tc := range cases {
		record := AttendanceRecord{CheckIn: tc.checkIn, CheckOut: tc.checkOut}
		if got := record.WorkedHours(); got.String() != tc.expected {
			t.Fatalf("%s: WorkedHours expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}
