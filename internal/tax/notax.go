package tax

import (
	"context"

	"github.com/okkersen/skatt/internal/domain"
)

// NoTaxCalculator returns zero tax for all calculations.
// Used for tax-exempt customers or wholesale accounts. Prices are treated
// as tax-exclusive; row totals are still computed so callers get a full
// result shape.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a new no-tax calculator.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// Calculate always returns a zero-tax breakdown.
func (c *NoTaxCalculator) Calculate(ctx context.Context, quote *domain.QuoteDetails, storeID string) (*domain.TaxDetails, error) {
	const op = "tax.notax.calculate"

	if quote == nil {
		return nil, domain.Errorf(domain.EINVALID, op, "quote is required")
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	// With no tiers resolved anywhere, the row strategy produces exactly
	// the zero-rate result shape.
	items := normalize(quote)
	rowStrategy{}.apply(items)
	return aggregate(items)
}
