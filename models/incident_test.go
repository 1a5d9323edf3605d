package models

import (
	"testing"
	"time"
)

func TestIncidentPriorityLimitDays(t *testing.T) {
	cases := []struct {
		priority IncidentPriority
		expected int
	}{
		{IncidentPriorityLow, 14},
		{IncidentPriorityMedium, 7},
		{IncidentPriorityHigh, 3},
		{IncidentPriorityUrgent, 1},
	}
	for _, tc := range cases {
		if got := tc.priority.LimitDays(); got != tc.expected {
			t.Fatalf("%s: LimitDays expected %d, got %d", tc.priority, tc.expected, got)
		}
	}
}

func TestIncidentDeadline(t *testing.T) {
	reported := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	incident := Incident{ReportedAt: reported, Priority: IncidentPriorityHigh}
	expected := time.Date(2026, 4, 4, 9, 0, 0, 0, time.UTC)
	if got := incident.Deadline(); !got.Equal(expected) {
		t.Fatalf("Deadline expected %s, got %s", expected, got)
	}
}

func TestIncidentIsOverdue(t *testing.T) {
	reported := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		state    IncidentState
		priority IncidentPriority
		now      time.Time
		expected bool
	}{
		{"open within deadline", IncidentStateReported, IncidentPriorityMedium,
			time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), false},
		{"open past deadline", IncidentStateReported, IncidentPriorityUrgent,
			time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), true},
		{"in progress past deadline", IncidentStateInProgress, IncidentPriorityHigh,
			time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), true},
		{"resolved never overdue", IncidentStateResolved, IncidentPriorityUrgent,
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"cancelled never overdue", IncidentStateCancelled, IncidentPriorityUrgent,
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		incident := Incident{ReportedAt: reported, State: tc.state, Priority: tc.priority}
		if got := incident.IsOverdue(tc.now); got != tc.expected {
			t.Fatalf("%s: IsOverdue expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestIncidentStateIsValid(t *testing.T) {
	for _, state := range []IncidentState{
		IncidentStateReported, IncidentStateInProgress, IncidentStateResolved, IncidentStateCancelled,
	} {
		if !state.IsValid() {
			t.Fatalf("%s: IsValid expected true", state)
		}
	}
	for _, state := range []IncidentState{"", "archivada", "EN_PROCESO"} {
		if state.IsValid() {
			t.Fatalf("%q: IsValid expected false", state)
		}
	}
}

func TestIncidentStateIsClosing(t *testing.T) {
	closing := map[IncidentState]bool{
		IncidentStateReported:   false,
		IncidentStateInProgress: false,
		IncidentStateResolved:   true,
		IncidentStateCancelled:  true,
	}
	for state, expected := range closing {
		if got := state.IsClosing(); got != expected {
			t.Fatalf("%s: IsClosing expected %v, got %v", state, expected, got)
		}
	}
}
