package tax

import (
	"context"
	"fmt"

	"github.com/okkersen/skatt/internal/domain"
)

// Calculator defines the interface for quote tax calculation.
// Implementations: Engine, NoTaxCalculator, MockCalculator.
type Calculator interface {
	// Calculate computes the full tax breakdown for one quote.
	// storeID optionally selects store-scoped defaults; empty selects the
	// global configuration. The call is pure and synchronous: errors are
	// raised before any partial result is returned.
	Calculate(ctx context.Context, quote *domain.QuoteDetails, storeID string) (*domain.TaxDetails, error)
}

// Algorithm selects where rounding happens during aggregation.
type Algorithm string

const (
	// UnitBase rounds tax per single unit, then scales by quantity.
	UnitBase Algorithm = "UNIT_BASE_CALCULATION"
	// RowBase rounds tax once per row.
	RowBase Algorithm = "ROW_BASE_CALCULATION"
	// TotalBase accumulates unrounded tax per rate group across the quote,
	// rounds once per group, and allocates back to rows proportionally.
	TotalBase Algorithm = "TOTAL_BASE_CALCULATION"
)

// ParseAlgorithm validates a configured algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case UnitBase, RowBase, TotalBase:
		return Algorithm(s), nil
	case "":
		return RowBase, nil
	}
	return "", fmt.Errorf("unrecognized tax algorithm %q", s)
}

// StoreSettings overrides engine defaults for one store.
// Zero values inherit from the global Settings.
type StoreSettings struct {
	Algorithm      Algorithm
	DefaultCountry string
	DefaultRegion  string

	// Exempt stores skip rate resolution entirely; every item is taxed at
	// zero, mirroring NoTaxCalculator behavior inside a configured engine.
	Exempt bool
}

// Settings is the engine configuration: the calculation algorithm, the
// default jurisdiction used when a quote carries no address, and per-store
// overrides.
type Settings struct {
	Algorithm      Algorithm
	DefaultCountry string
	DefaultRegion  string
	Stores         map[string]StoreSettings
}

// ForStore resolves the effective settings for a store. Unknown store IDs
// fall back to the global defaults rather than erroring.
func (s Settings) ForStore(storeID string) StoreSettings {
	eff := StoreSettings{
		Algorithm:      s.Algorithm,
		DefaultCountry: s.DefaultCountry,
		DefaultRegion:  s.DefaultRegion,
	}
	if eff.Algorithm == "" {
		eff.Algorithm = RowBase
	}
	st, ok := s.Stores[storeID]
	if !ok {
		return eff
	}
	if st.Algorithm != "" {
		eff.Algorithm = st.Algorithm
	}
	if st.DefaultCountry != "" {
		eff.DefaultCountry = st.DefaultCountry
	}
	if st.DefaultRegion != "" {
		eff.DefaultRegion = st.DefaultRegion
	}
	eff.Exempt = st.Exempt
	return eff
}
