package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateHouseCoefficient(t *testing.T) {
	cases := []struct {
		value   string
		wantErr bool
	}{
		{"0.012500", false},
		{"1", false},
		{"0.000001", false},
		{"0", true},
		{"-0.01", true},
		{"1.000001", true},
	}
	for _, tc := range cases {
		c, err := decimal.NewFromString(tc.value)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", tc.value, err)
		}
		err = ValidateHouseCoefficient(c)
		if tc.wantErr && err == nil {
			t.Fatalf("ValidateHouseCoefficient(%s) expected error", tc.value)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("ValidateHouseCoefficient(%s) unexpected error: %v", tc.value, err)
		}
	}
}

func TestHouseCode(t *testing.T) {
	house := House{Block: "B", Number: "204"}
	if got := house.Code(); got != "B-204" {
		t.Fatalf("Code expected B-204, got %s", got)
	}
}

func TestIsValidBlock(t *testing.T) {
	for _, block := range []string{"A", "B", "C", "D"} {
		if !IsValidBlock(block) {
			t.Fatalf("block %q should be valid", block)
		}
	}
	for _, block := range []string{"E", "a", "", "AB"} {
		if IsValidBlock(block) {
			t.Fatalf("block %q should not be valid", block)
		}
	}
}
