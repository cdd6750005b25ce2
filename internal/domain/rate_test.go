package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTaxRate_DisplayCode(t *testing.T) {
	tests := []struct {
		name     string
		rate     TaxRate
		expected string
	}{
		{
			name:     "conventional form",
			rate:     TaxRate{Percent: decimal.RequireFromString("7.5"), Country: "US", Region: "42"},
			expected: "US - 42 - 7.5",
		},
		{
			name:     "postcode appended",
			rate:     TaxRate{Percent: decimal.RequireFromString("2"), Country: "US", Region: "42", Postcode: "90210"},
			expected: "US - 42 - 2 - 90210",
		},
		{
			name:     "explicit code wins",
			rate:     TaxRate{Percent: decimal.RequireFromString("19"), Country: "DE", Region: "BE", Code: "DE VAT"},
			expected: "DE VAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rate.DisplayCode(); got != tt.expected {
				t.Errorf("DisplayCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTaxRule_AppliesTo(t *testing.T) {
	rule := TaxRule{CustomerClassIDs: []int{3, 7}, ProductClassIDs: []int{2}}

	if !rule.AppliesTo(3, 2) {
		t.Error("expected match for bound pair")
	}
	if rule.AppliesTo(3, 5) {
		t.Error("unbound product class must not match")
	}
	if rule.AppliesTo(1, 2) {
		t.Error("unbound customer class must not match")
	}
}

func TestTaxRate_PostcodeScoped(t *testing.T) {
	if (TaxRate{Postcode: ""}).PostcodeScoped() {
		t.Error("empty postcode is region-scoped")
	}
	if (TaxRate{Postcode: "*"}).PostcodeScoped() {
		t.Error("wildcard postcode is region-scoped")
	}
	if !(TaxRate{Postcode: "90210"}).PostcodeScoped() {
		t.Error("explicit postcode is postcode-scoped")
	}
}
