package models

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 6, 15, hour, minute, 0, 0, time.UTC)
}

func TestReservationOverlaps(t *testing.T) {
	reservation := Reservation{StartTime: at(10, 0), EndTime: at(12, 0)}

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"identical", at(10, 0), at(12, 0), true},
		{"contained", at(10, 30), at(11, 30), true},
		{"overlaps start", at(9, 0), at(10, 30), true},
		{"overlaps end", at(11, 30), at(13, 0), true},
		{"back to back before", at(8, 0), at(10, 0), false},
		{"back to back after", at(12, 0), at(14, 0), false},
		{"disjoint", at(14, 0), at(16, 0), false},
	}
	for _, tc := range cases {
		if got := reservation.Overlaps(tc.start, tc.end); got != tc.expected {
			t.Fatalf("%s: Overlaps expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestReservationCanConfirm(t *testing.T) {
	cases := []struct {
		name        string
		state       ReservationState
		payment     ReservationPaymentState
		confirmable bool
	}{
		{"pending with fee paid", ReservationStatePending, ReservationPaymentPaid, true},
		// an unpaid fee does not block confirmation
		{"pending with fee unpaid", ReservationStatePending, ReservationPaymentPending, true},
		{"pending exempt", ReservationStatePending, ReservationPaymentExempt, true},
		{"already confirmed", ReservationStateConfirmed, ReservationPaymentPaid, false},
		{"cancelled", ReservationStateCancelled, ReservationPaymentExempt, false},
		{"completed", ReservationStateCompleted, ReservationPaymentPaid, false},
	}
	for _, tc := range cases {
		reservation := Reservation{State: tc.state, PaymentState: tc.payment}
		err := reservation.canConfirm()
		if tc.confirmable && err != nil {
			t.Fatalf("%s: canConfirm expected nil, got %v", tc.name, err)
		}
		if !tc.confirmable && err == nil {
			t.Fatalf("%s: canConfirm expected an error", tc.name)
		}
	}
}

func TestWithinOperatingHours(t *testing.T) {
	area := CommonArea{OpensAt: "08:00", ClosesAt: "22:00"}

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"inside window", at(10, 0), at(12, 0), true},
		{"exact window", at(8, 0), at(22, 0), true},
		{"starts too early", at(7, 30), at(9, 0), false},
		{"ends too late", at(21, 0), at(22, 30), false},
	}
	for _, tc := range cases {
		got, err := area.WithinOperatingHours(tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: WithinOperatingHours error: %v", tc.name, err)
		}
		if got != tc.expected {
			t.Fatalf("%s: WithinOperatingHours expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestWithinOperatingHours_BadClock(t *testing.T) {
	area := CommonArea{OpensAt: "25:00", ClosesAt: "22:00"}
	if _, err := area.WithinOperatingHours(at(10, 0), at(11, 0)); err == nil {
		t.Fatalf("expected error for malformed opening time")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in       string
		expected int
		wantErr  bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"garbage", 0, true},
	}
	for _, tc := range cases {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseClock(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseClock(%q) error: %v", tc.in, err)
		}
		if got != tc.expected {
			t.Fatalf("parseClock(%q) expected %d, got %d", tc.in, tc.expected, got)
		}
	}
}
