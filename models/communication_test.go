package models

import (
	"testing"
	"time"
)

func TestAnnouncementIsVisible(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	cases := []struct {
		name        string
		publishedAt *time.Time
		expiresAt   *time.Time
		expected    bool
	}{
		{"draft", nil, nil, false},
		{"published no expiry", &past, nil, true},
		{"published future expiry", &past, &future, true},
		{"expired", &past, &past, false},
		{"scheduled for later", &future, nil, false},
	}
	for _, tc := range cases {
		announcement := Announcement{PublishedAt: tc.publishedAt, ExpiresAt: tc.expiresAt}
		if got := announcement.IsVisible(now); got != tc.expected {
			t.Fatalf("%s: IsVisible expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}
