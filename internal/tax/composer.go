package tax

import (
	"strings"

	"github.com/okkersen/skatt/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// tier is one priority group of resolved rates. Rates inside a tier apply
// simultaneously and combine additively; tiers compound sequentially in
// priority order, each taxing the base plus all previous tiers' tax.
type tier struct {
	priority int
	percent  decimal.Decimal
	rates    []resolvedRate
}

// composeTiers groups resolved rates (already ordered by priority) into
// tiers. The tier percent is the plain sum of its rates' percents.
func composeTiers(rates []resolvedRate) []tier {
	var tiers []tier
	for _, rr := range rates {
		if n := len(tiers); n > 0 && tiers[n-1].priority == rr.priority {
			t := &tiers[n-1]
			t.percent = t.percent.Add(rr.rate.Percent)
			t.rates = append(t.rates, rr)
			continue
		}
		tiers = append(tiers, tier{
			priority: rr.priority,
			percent:  rr.rate.Percent,
			rates:    []resolvedRate{rr},
		})
	}
	return tiers
}

// effectivePercent is the combined percent across all tiers:
// (∏(1 + pᵢ/100) − 1) · 100. Two tiers of 13.25 and 11 yield 25.7075, not
// 24.25.
func effectivePercent(tiers []tier) decimal.Decimal {
	factor := one
	for _, t := range tiers {
		factor = factor.Mul(one.Add(t.percent.Div(hundred)))
	}
	return factor.Sub(one).Mul(hundred)
}

// key is the tier's composed-rate identity: the concatenation of its
// constituent rate codes. Aggregation merges applied taxes sharing a key.
func (t tier) key() string {
	var b strings.Builder
	for _, rr := range t.rates {
		b.WriteString(rr.rate.DisplayCode())
	}
	return b.String()
}

// appliedRates lists the tier's constituent rates for result reporting.
func (t tier) appliedRates() []domain.AppliedRate {
	rates := make([]domain.AppliedRate, len(t.rates))
	for i, rr := range t.rates {
		code := rr.rate.DisplayCode()
		rates[i] = domain.AppliedRate{
			Code:    code,
			Title:   code,
			Percent: rr.rate.Percent,
		}
	}
	return rates
}
