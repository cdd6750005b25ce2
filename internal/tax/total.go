package tax

import "github.com/shopspring/decimal"

// totalStrategy accumulates unrounded tax per rate group across all rows,
// rounds once per group at the quote level, and allocates the rounded
// figure back to rows. The quote-level amount is authoritative; item
// amounts may not sum exactly to it row-by-row, so the final row in
// iteration order absorbs the leftover cent.
type totalStrategy struct{}

func (totalStrategy) name() string { return string(TotalBase) }

func (totalStrategy) apply(items []*lineItem) {
	type share struct {
		item *lineItem
		t    tier
		raw  decimal.Decimal
	}
	type group struct {
		total  decimal.Decimal
		shares []*share
	}

	groups := make(map[string]*group)
	var order []string

	for _, it := range items {
		if it.container {
			continue
		}
		b := computeBases(it)
		fillCommon(it, b)

		amts := tierAmounts(it.tiers, b.taxable)
		for i, t := range it.tiers {
			key := t.key()
			g, ok := groups[key]
			if !ok {
				g = &group{}
				groups[key] = g
				order = append(order, key)
			}
			g.total = g.total.Add(amts[i])
			g.shares = append(g.shares, &share{item: it, t: t, raw: amts[i]})
		}
	}

	for _, key := range order {
		g := groups[key]
		rounded := roundCurrency(g.total)
		allocated := decimal.Zero
		for i, sh := range g.shares {
			var amt decimal.Decimal
			if i == len(g.shares)-1 {
				amt = rounded.Sub(allocated)
			} else {
				amt = roundCurrency(sh.raw)
				allocated = allocated.Add(amt)
			}
			applyTier(sh.item, sh.t, amt)
		}
	}

	for _, it := range items {
		if !it.container {
			finishItem(it)
		}
	}
}
