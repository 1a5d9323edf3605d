package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	cases := []struct {
		name     string
		txType   TransactionType
		amount   string
		expected string
	}{
		{"income stays positive", TransactionTypeIncome, "1500", "1500"},
		{"income negates negative input", TransactionTypeIncome, "-1500", "1500"},
		{"expense stored negative", TransactionTypeExpense, "800", "-800"},
		{"expense already negative", TransactionTypeExpense, "-800", "-800"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("%s: bad amount: %v", tc.name, err)
		}
		if got := SignedAmount(tc.txType, amount); got.String() != tc.expected {
			t.Fatalf("%s: SignedAmount expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestTransactionCategoryMatchesType(t *testing.T) {
	cases := []struct {
		category TransactionCategory
		txType   TransactionType
		expected bool
	}{
		{CategoryAdminFee, TransactionTypeIncome, true},
		{CategoryAdminFee, TransactionTypeExpense, false},
		{CategoryAreaReservation, TransactionTypeIncome, true},
		{CategoryMaintenance, TransactionTypeExpense, true},
		{CategoryMaintenance, TransactionTypeIncome, false},
		{CategoryPayroll, TransactionTypeExpense, true},
		{CategoryFundContribution, TransactionTypeIncome, true},
		{CategoryFundUse, TransactionTypeExpense, true},
	}
	for _, tc := range cases {
		if got := tc.category.MatchesType(tc.txType); got != tc.expected {
			t.Fatalf("%s/%s: MatchesType expected %v, got %v", tc.category, tc.txType, tc.expected, got)
		}
	}
}

func TestTransactionCategoryIsValid(t *testing.T) {
	if !CategoryAdminFee.IsValid() {
		t.Fatalf("CategoryAdminFee should be valid")
	}
	if !CategoryGardening.IsValid() {
		t.Fatalf("CategoryGardening should be valid")
	}
	if TransactionCategory("sobornos").IsValid() {
		t.Fatalf("unknown category should not be valid")
	}
}
