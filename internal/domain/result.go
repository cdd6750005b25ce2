package domain

import "github.com/shopspring/decimal"

// AppliedRate describes one constituent rate of an applied tax.
type AppliedRate struct {
	Code    string          `json:"code"`
	Title   string          `json:"title"`
	Percent decimal.Decimal `json:"percent"`
}

// AppliedTax is one priority tier's contribution to an item or quote.
// Rates sharing the tier are listed individually; TaxRateKey is the
// concatenation of their codes and defines composed-rate identity for
// aggregation.
type AppliedTax struct {
	TaxRateKey string          `json:"tax_rate_key"`
	Percent    decimal.Decimal `json:"percent"`
	Amount     decimal.Decimal `json:"amount"`
	Rates      []AppliedRate   `json:"rates"`
}

// ItemTaxDetails is the per-item calculation result.
type ItemTaxDetails struct {
	Code string `json:"code"`
	Type string `json:"type"`

	RowTax          decimal.Decimal `json:"row_tax"`
	Price           decimal.Decimal `json:"price"`
	PriceInclTax    decimal.Decimal `json:"price_incl_tax"`
	RowTotal        decimal.Decimal `json:"row_total"`
	RowTotalInclTax decimal.Decimal `json:"row_total_incl_tax"`

	// TaxPercent is the effective combined percent across all composed
	// tiers, not the sum of the nominal tier percents.
	TaxPercent decimal.Decimal `json:"tax_percent"`

	DiscountTaxCompensationAmount decimal.Decimal `json:"discount_tax_compensation_amount"`

	AssociatedItemCode string `json:"associated_item_code,omitempty"`

	AppliedTaxes map[string]AppliedTax `json:"applied_taxes"`
}

// TaxDetails is the quote-level result. Computed fresh per request, never
// persisted by the engine.
type TaxDetails struct {
	// Subtotal is always tax-exclusive.
	Subtotal decimal.Decimal `json:"subtotal"`

	TaxAmount                     decimal.Decimal `json:"tax_amount"`
	DiscountTaxCompensationAmount decimal.Decimal `json:"discount_tax_compensation_amount"`

	// AppliedTaxes aggregates item-level applied taxes across the quote,
	// keyed by tax_rate_key.
	AppliedTaxes map[string]AppliedTax `json:"applied_taxes"`

	// Items maps item code to its calculation result.
	Items map[string]ItemTaxDetails `json:"items"`
}
