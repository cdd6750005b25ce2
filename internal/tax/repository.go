package tax

import (
	"context"

	"github.com/okkersen/skatt/internal/domain"
)

// RuleRepository is the engine's read-only view of tax rule storage.
// The repository is externally owned; the engine never mutates it and
// assumes it supports concurrent reads.
type RuleRepository interface {
	// RulesForClasses returns every rule binding the given customer/product
	// class pair. Multiple rules may apply to the same pair; all of their
	// rates participate in the effective rate set.
	RulesForClasses(ctx context.Context, customerClassID, productClassID int) ([]domain.TaxRule, error)
}

// ClassRepository resolves tax classes by id or by name.
// A nil class with a nil error means the class does not exist; errors are
// reserved for infrastructure failures.
type ClassRepository interface {
	ClassByID(ctx context.Context, typ domain.TaxClassType, id int) (*domain.TaxClass, error)
	ClassByName(ctx context.Context, typ domain.TaxClassType, name string) (*domain.TaxClass, error)
}
