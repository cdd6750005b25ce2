package tax

import (
	"context"

	"github.com/okkersen/skatt/internal/domain"
)

// MockCalculator is a test implementation of Calculator.
type MockCalculator struct {
	CalculateFunc func(ctx context.Context, quote *domain.QuoteDetails, storeID string) (*domain.TaxDetails, error)
}

// NewMockCalculator creates a new mock tax calculator for testing.
func NewMockCalculator() *MockCalculator {
	return &MockCalculator{}
}

// Calculate delegates to the configured function or returns an empty
// result.
func (m *MockCalculator) Calculate(ctx context.Context, quote *domain.QuoteDetails, storeID string) (*domain.TaxDetails, error) {
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ctx, quote, storeID)
	}
	return &domain.TaxDetails{
		AppliedTaxes: make(map[string]domain.AppliedTax),
		Items:        make(map[string]domain.ItemTaxDetails),
	}, nil
}
