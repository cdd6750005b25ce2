package tax

// rowStrategy computes tax on the full row total and rounds once at the
// row level, per tier.
type rowStrategy struct{}

func (rowStrategy) name() string { return string(RowBase) }

func (rowStrategy) apply(items []*lineItem) {
	for _, it := range items {
		if it.container {
			continue
		}
		b := computeBases(it)
		fillCommon(it, b)

		amts := tierAmounts(it.tiers, b.taxable)
		for i, t := range it.tiers {
			applyTier(it, t, roundCurrency(amts[i]))
		}

		finishItem(it)
	}
}
