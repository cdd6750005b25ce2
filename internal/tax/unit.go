package tax

// unitStrategy rounds tax per single unit before scaling by quantity.
type unitStrategy struct{}

func (unitStrategy) name() string { return string(UnitBase) }

func (unitStrategy) apply(items []*lineItem) {
	for _, it := range items {
		if it.container {
			continue
		}
		b := computeBases(it)
		fillCommon(it, b)

		if len(it.tiers) > 0 {
			unitBase := b.taxable.Div(it.src.Quantity)
			amts := tierAmounts(it.tiers, unitBase)
			for i, t := range it.tiers {
				rowAmount := roundCurrency(amts[i]).Mul(it.src.Quantity)
				// Exact for whole quantities; fractional quantities still
				// need a currency-precision result.
				applyTier(it, t, roundCurrency(rowAmount))
			}
		}

		finishItem(it)
	}
}
