package tax

import (
	"github.com/okkersen/skatt/internal/domain"
	"github.com/shopspring/decimal"
)

// currencyScale is the rounding precision for all monetary amounts.
const currencyScale = 2

// roundCurrency rounds to currency precision with round-half-to-even.
// Half-even is what makes the three algorithms diverge the documented way
// (0.825 per unit rounds down to 0.82, 1.155 per row rounds up to 1.16).
func roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(currencyScale)
}

// strategy is one of the three calculation algorithms. All of them agree
// on a single line taxed once; they differ in where rounding happens when
// quantities and multiple rows interact.
type strategy interface {
	name() string
	apply(items []*lineItem)
}

func strategyFor(alg Algorithm) strategy {
	switch alg {
	case UnitBase:
		return unitStrategy{}
	case TotalBase:
		return totalStrategy{}
	default:
		return rowStrategy{}
	}
}

// itemBases holds the full-precision intermediates every strategy starts
// from.
type itemBases struct {
	// exclUnit is the tax-exclusive unit price, unrounded. For
	// tax-inclusive items it is back-calculated from the caller's price
	// using the item's actual resolved rate, never a store default.
	exclUnit decimal.Decimal

	// rowExcl is exclUnit scaled by quantity, unrounded.
	rowExcl decimal.Decimal

	// taxable is rowExcl less the tax-exclusive discount, floored at zero.
	// Tax is always computed after discount.
	taxable decimal.Decimal

	// compensation is the tax share of a tax-inclusive discount, rounded.
	compensation decimal.Decimal
}

func computeBases(it *lineItem) itemBases {
	factor := one.Add(it.effective.Div(hundred))
	inclusive := it.src.IsTaxIncluded && it.effective.IsPositive()

	excl := it.src.UnitPrice
	if inclusive {
		excl = it.src.UnitPrice.Div(factor)
	}
	rowExcl := excl.Mul(it.src.Quantity)

	discExcl := it.src.DiscountAmount
	comp := decimal.Zero
	if inclusive && it.src.DiscountAmount.IsPositive() {
		discExcl = it.src.DiscountAmount.Div(factor)
		comp = roundCurrency(it.src.DiscountAmount.Sub(discExcl))
	}

	taxable := rowExcl.Sub(discExcl)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	return itemBases{
		exclUnit:     excl,
		rowExcl:      rowExcl,
		taxable:      taxable,
		compensation: comp,
	}
}

// fillCommon sets the result fields that do not depend on the rounding
// point.
func fillCommon(it *lineItem, b itemBases) {
	res := &it.res
	res.Price = roundCurrency(b.exclUnit)
	if it.src.IsTaxIncluded && it.effective.IsPositive() {
		res.PriceInclTax = roundCurrency(it.src.UnitPrice)
	} else {
		res.PriceInclTax = roundCurrency(b.exclUnit.Mul(one.Add(it.effective.Div(hundred))))
	}
	res.RowTotal = roundCurrency(b.rowExcl)
	res.TaxPercent = it.effective
	res.DiscountTaxCompensationAmount = b.compensation
}

// finishItem derives the tax-dependent fields once row tax is complete.
func finishItem(it *lineItem) {
	it.res.RowTotalInclTax = it.res.RowTotal.Add(it.res.RowTax)
}

// tierAmounts computes the full-precision tax per tier for a taxable base.
// Each tier taxes the base plus all previous tiers' tax: that is the
// cross-tier compounding.
func tierAmounts(tiers []tier, base decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(tiers))
	running := base
	for i, t := range tiers {
		amt := running.Mul(t.percent).Div(hundred)
		out[i] = amt
		running = running.Add(amt)
	}
	return out
}

// applyTier records one tier's rounded contribution on the item.
func applyTier(it *lineItem, t tier, amount decimal.Decimal) {
	key := t.key()
	at, ok := it.res.AppliedTaxes[key]
	if !ok {
		at = domain.AppliedTax{
			TaxRateKey: key,
			Percent:    t.percent,
			Rates:      t.appliedRates(),
		}
	}
	at.Amount = at.Amount.Add(amount)
	it.res.AppliedTaxes[key] = at
	it.res.RowTax = it.res.RowTax.Add(amount)
}
