package tax

import (
	"github.com/okkersen/skatt/internal/domain"
	"github.com/shopspring/decimal"
)

// aggregate merges per-item results into the quote-level TaxDetails.
// Bundle containers are rolled up from their children first; they appear
// in the item map for display but never contribute to the quote totals,
// which their children already carry.
func aggregate(items []*lineItem) (*domain.TaxDetails, error) {
	const op = "tax.aggregate"

	details := &domain.TaxDetails{
		AppliedTaxes: make(map[string]domain.AppliedTax),
		Items:        make(map[string]domain.ItemTaxDetails, len(items)),
	}

	for _, it := range items {
		if it.container {
			rollupContainer(it)
		}
	}

	for _, it := range items {
		if !it.container {
			details.Subtotal = details.Subtotal.Add(it.res.RowTotal)
			details.TaxAmount = details.TaxAmount.Add(it.res.RowTax)
			details.DiscountTaxCompensationAmount = details.DiscountTaxCompensationAmount.Add(it.res.DiscountTaxCompensationAmount)

			for key, at := range it.res.AppliedTaxes {
				q, ok := details.AppliedTaxes[key]
				if !ok {
					q = domain.AppliedTax{
						TaxRateKey: key,
						Percent:    at.Percent,
						Rates:      at.Rates,
					}
				} else if !q.Percent.Equal(at.Percent) {
					return nil, domain.Errorf(domain.ECONFLICT, op,
						"tax rate key %q applied with conflicting percents %s and %s", key, q.Percent, at.Percent)
				}
				q.Amount = q.Amount.Add(at.Amount)
				details.AppliedTaxes[key] = q
			}
		}

		details.Items[it.res.Code] = it.res
	}

	return details, nil
}

// rollupContainer fills a bundle container's result from its children.
// The container's tax fields are a display rollup: no rate is ever
// resolved for the container itself and it carries no applied taxes.
func rollupContainer(it *lineItem) {
	res := &it.res
	percent := decimal.Zero
	uniform := true

	for i, child := range it.children {
		res.RowTax = res.RowTax.Add(child.res.RowTax)
		res.RowTotal = res.RowTotal.Add(child.res.RowTotal)
		res.RowTotalInclTax = res.RowTotalInclTax.Add(child.res.RowTotalInclTax)
		res.DiscountTaxCompensationAmount = res.DiscountTaxCompensationAmount.Add(child.res.DiscountTaxCompensationAmount)

		if i == 0 {
			percent = child.res.TaxPercent
		} else if !percent.Equal(child.res.TaxPercent) {
			uniform = false
		}
	}

	if uniform {
		res.TaxPercent = percent
	}

	qty := it.src.Quantity
	res.Price = roundCurrency(res.RowTotal.Div(qty))
	res.PriceInclTax = roundCurrency(res.RowTotalInclTax.Div(qty))
}
