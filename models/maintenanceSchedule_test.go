package models

import (
	"testing"
	"time"
)

func TestScheduleFrequencyNextDate(t *testing.T) {
	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		frequency ScheduleFrequency
		expected  time.Time
	}{
		{FrequencyDaily, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		{FrequencyBiweekly, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		// Jan 31 + 1 month clamps to the last day of February (2026 is not a leap year).
		{FrequencyMonthly, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{FrequencyBimonthly, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
		{FrequencyQuarterly, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
		{FrequencyHalfYearly, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)},
		{FrequencyYearly, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := tc.frequency.NextDate(from)
		if !got.Equal(tc.expected) {
			t.Fatalf("%s: NextDate expected %s, got %s", tc.frequency, tc.expected, got)
		}
	}
}

func TestScheduleFrequencyNextDate_ClampsMonthEnd(t *testing.T) {
	cases := []struct {
		from      time.Time
		frequency ScheduleFrequency
		expected  time.Time
	}{
		// month-end anchors never spill into the following month
		{time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), FrequencyMonthly, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), FrequencyMonthly, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), FrequencyBimonthly, time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2027, 11, 30, 0, 0, 0, 0, time.UTC), FrequencyQuarterly, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), FrequencyHalfYearly, time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)},
		// leap-day anchor falls back to Feb 28 on non-leap years
		{time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), FrequencyYearly, time.Date(2029, 2, 28, 0, 0, 0, 0, time.UTC)},
		// ordinary days keep their day-of-month
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), FrequencyMonthly, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := tc.frequency.NextDate(tc.from)
		if !got.Equal(tc.expected) {
			t.Fatalf("%s from %s: NextDate expected %s, got %s",
				tc.frequency, tc.from.Format("2006-01-02"), tc.expected, got)
		}
	}
}

func TestScheduleFrequencyNextDate_AlwaysAdvances(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, frequency := range []ScheduleFrequency{
		FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyBimonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly,
	} {
		if got := frequency.NextDate(from); !got.After(from) {
			t.Fatalf("%s: NextDate did not advance (%s)", frequency, got)
		}
	}
}
