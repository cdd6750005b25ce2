package tax

import (
	"github.com/okkersen/skatt/internal/domain"
	"github.com/shopspring/decimal"
)

// lineItem is the engine's working representation of one quote item: the
// source item, its composed rate tiers, and the result under construction.
type lineItem struct {
	src       *domain.QuoteItem
	tiers     []tier
	effective decimal.Decimal

	// container marks a bundle parent that only exists to group its
	// children: zero own price, children referencing it via parent_code.
	// Containers skip rate resolution and get a rollup result instead.
	container bool
	children  []*lineItem

	res domain.ItemTaxDetails
}

// normalize flattens quote items into working line items, preserving
// order, wiring parent/child links, and marking bundle containers.
// The quote must already be validated.
func normalize(quote *domain.QuoteDetails) []*lineItem {
	items := make([]*lineItem, len(quote.Items))
	byCode := make(map[string]*lineItem, len(quote.Items))

	for i := range quote.Items {
		src := &quote.Items[i]
		it := &lineItem{
			src: src,
			res: domain.ItemTaxDetails{
				Code:               src.Code,
				Type:               src.Type,
				AssociatedItemCode: src.AssociatedItemCode,
				AppliedTaxes:       make(map[string]domain.AppliedTax),
			},
		}
		items[i] = it
		byCode[src.Code] = it
	}

	for _, it := range items {
		if it.src.ParentCode == "" {
			continue
		}
		parent := byCode[it.src.ParentCode]
		parent.children = append(parent.children, it)
	}

	for _, it := range items {
		it.container = len(it.children) > 0 && it.src.UnitPrice.IsZero()
	}

	return items
}
