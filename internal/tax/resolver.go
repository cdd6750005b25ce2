package tax

import (
	"context"
	"sort"
	"strings"

	"github.com/okkersen/skatt/internal/domain"
)

// resolvedRate is a rate tagged with its owning rule's composition
// metadata.
type resolvedRate struct {
	rate      domain.TaxRate
	priority  int
	sortOrder int
}

// rateResolver finds the applicable rates for an address and a
// customer/product class pair.
type rateResolver struct {
	rules RuleRepository
}

// resolve returns the ordered set of applicable rates. An empty result is
// not an error: the item is simply taxed at zero.
//
// Ordering: rule priority first (it defines the compounding tiers), then
// rule sort order, then postcode-specific rates ahead of region-only ones.
// Sort order never affects the arithmetic, only display ordering inside a
// tier.
func (r *rateResolver) resolve(ctx context.Context, addr domain.Address, customerClassID, productClassID int) ([]resolvedRate, error) {
	const op = "tax.rate.resolve"

	rules, err := r.rules.RulesForClasses(ctx, customerClassID, productClassID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "tax rule lookup failed")
	}

	var out []resolvedRate
	for _, rule := range rules {
		for _, rate := range rule.Rates {
			if !rateApplies(rate, addr) {
				continue
			}
			out = append(out, resolvedRate{
				rate:      rate,
				priority:  rule.Priority,
				sortOrder: rule.SortOrder,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.sortOrder != b.sortOrder {
			return a.sortOrder < b.sortOrder
		}
		if pa, pb := a.rate.PostcodeScoped(), b.rate.PostcodeScoped(); pa != pb {
			return pa
		}
		return a.rate.DisplayCode() < b.rate.DisplayCode()
	})

	return out, nil
}

// rateApplies matches a rate's jurisdiction against an address. Empty or
// "*" scopes are wildcards; a postcode ending in "*" matches by prefix.
func rateApplies(rate domain.TaxRate, addr domain.Address) bool {
	if !scopeMatches(rate.Country, addr.Country) {
		return false
	}
	if !scopeMatches(rate.Region, addr.Region) {
		return false
	}
	return postcodeMatches(rate.Postcode, addr.Postcode)
}

func scopeMatches(scope, value string) bool {
	if scope == "" || scope == "*" {
		return true
	}
	return strings.EqualFold(scope, value)
}

func postcodeMatches(scope, postcode string) bool {
	if scope == "" || scope == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(scope, "*"); ok {
		return strings.HasPrefix(postcode, prefix)
	}
	return scope == postcode
}
