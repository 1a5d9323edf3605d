package models

import "testing"

func TestCompositeCursorRoundTrip(t *testing.T) {
	cases := []struct {
		value string
		id    int
	}{
		{"A-101", 7},
		{"2026-06-15T10:00:00Z", 42},
		{"", 1},
	}
	for _, tc := range cases {
		encoded := EncodeCompositeCursor(tc.value, tc.id)
		value, id := DecodeCompositeCursor(&encoded)
		if value != tc.value || id != tc.id {
			t.Fatalf("round trip of (%q, %d) gave (%q, %d)", tc.value, tc.id, value, id)
		}
	}
}

func TestDecodeCompositeCursor_Garbage(t *testing.T) {
	for _, raw := range []string{"not-base64!", "bm9wZQ==", ""} {
		cursor := raw
		value, id := DecodeCompositeCursor(&cursor)
		if value != "" || id != 0 {
			t.Fatalf("DecodeCompositeCursor(%q) expected zero values, got (%q, %d)", raw, value, id)
		}
	}
}

func TestDecodeCompositeCursor_Nil(t *testing.T) {
	value, id := DecodeCompositeCursor(nil)
	if value != "" || id != 0 {
		t.Fatalf("nil cursor expected zero values, got (%q, %d)", value, id)
	}
}

func TestDecodeCursor(t *testing.T) {
	encoded := EncodeCursor("casa A-101")
	decoded, err := DecodeCursor(&encoded)
	if err != nil {
		t.Fatalf("DecodeCursor error: %v", err)
	}
	if decoded != "casa A-101" {
		t.Fatalf("DecodeCursor expected %q, got %q", "casa A-101", decoded)
	}
}
