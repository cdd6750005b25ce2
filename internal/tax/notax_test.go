package tax_test

import (
	"context"
	"testing"

	"github.com/okkersen/skatt/internal/domain"
	"github.com/okkersen/skatt/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NoTaxCalculator_AlwaysZero validates the exempt path: full result
// shape, zero tax everywhere.
func Test_NoTaxCalculator_AlwaysZero(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	quote := &domain.QuoteDetails{
		ShippingAddress:  &domain.Address{Country: "US", Region: "42"},
		CustomerTaxClass: domain.ClassID(3),
		Items: []domain.QuoteItem{
			{Code: "sequence-1", Quantity: dec("2"), UnitPrice: dec("10"), TaxClass: domain.ClassID(2)},
			{Code: "sequence-2", Quantity: dec("1"), UnitPrice: dec("99.99"), TaxClass: domain.ClassID(2)},
		},
	}

	details, err := calc.Calculate(context.Background(), quote, "any-store")

	require.NoError(t, err)
	require.NotNil(t, details)
	assertDecimal(t, "119.99", details.Subtotal)
	assertDecimal(t, "0", details.TaxAmount)
	assert.Empty(t, details.AppliedTaxes)

	require.Len(t, details.Items, 2)
	for code, item := range details.Items {
		assertDecimal(t, "0", item.RowTax, code)
		assertDecimal(t, "0", item.TaxPercent, code)
		assert.Empty(t, item.AppliedTaxes, code)
		assert.True(t, item.RowTotal.Equal(item.RowTotalInclTax), "no tax means both row totals agree")
	}
}

// Test_NoTaxCalculator_StillValidates: exemption does not bypass quote
// validation.
func Test_NoTaxCalculator_StillValidates(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	details, err := calc.Calculate(context.Background(), &domain.QuoteDetails{
		Items: []domain.QuoteItem{{Code: "sequence-1", UnitPrice: dec("10")}},
	}, "")

	require.Error(t, err)
	assert.Nil(t, details)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

// Test_MockCalculator delegates to the configured function and falls back
// to an empty result.
func Test_MockCalculator(t *testing.T) {
	mock := tax.NewMockCalculator()

	details, err := mock.Calculate(context.Background(), &domain.QuoteDetails{}, "")
	require.NoError(t, err)
	assert.Empty(t, details.Items)

	canned := &domain.TaxDetails{TaxAmount: dec("4.20")}
	mock.CalculateFunc = func(ctx context.Context, quote *domain.QuoteDetails, storeID string) (*domain.TaxDetails, error) {
		assert.Equal(t, "store-7", storeID)
		return canned, nil
	}

	details, err = mock.Calculate(context.Background(), &domain.QuoteDetails{}, "store-7")
	require.NoError(t, err)
	assert.Same(t, canned, details)
}
