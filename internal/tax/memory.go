package tax

import (
	"context"
	"strings"

	"github.com/okkersen/skatt/internal/domain"
)

// MemoryStore is an in-memory RuleRepository and ClassRepository.
// It backs tests and the offline CLI; production callers are expected to
// bring their own repository. Build it up front, then treat it as
// read-only: concurrent reads are safe, concurrent writes are not.
type MemoryStore struct {
	classes []domain.TaxClass
	rules   []domain.TaxRule
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddClass registers a tax class. Chainable.
func (s *MemoryStore) AddClass(c domain.TaxClass) *MemoryStore {
	s.classes = append(s.classes, c)
	return s
}

// AddRule registers a tax rule. Chainable.
func (s *MemoryStore) AddRule(r domain.TaxRule) *MemoryStore {
	s.rules = append(s.rules, r)
	return s
}

// RulesForClasses implements RuleRepository.
func (s *MemoryStore) RulesForClasses(ctx context.Context, customerClassID, productClassID int) ([]domain.TaxRule, error) {
	var out []domain.TaxRule
	for _, r := range s.rules {
		if r.AppliesTo(customerClassID, productClassID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ClassByID implements ClassRepository.
func (s *MemoryStore) ClassByID(ctx context.Context, typ domain.TaxClassType, id int) (*domain.TaxClass, error) {
	for i := range s.classes {
		if s.classes[i].Type == typ && s.classes[i].ID == id {
			c := s.classes[i]
			return &c, nil
		}
	}
	return nil, nil
}

// ClassByName implements ClassRepository.
func (s *MemoryStore) ClassByName(ctx context.Context, typ domain.TaxClassType, name string) (*domain.TaxClass, error) {
	for i := range s.classes {
		if s.classes[i].Type == typ && strings.EqualFold(s.classes[i].Name, name) {
			c := s.classes[i]
			return &c, nil
		}
	}
	return nil, nil
}
