package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Item types with engine-level meaning. Any other value is carried through
// to the result untouched.
const (
	ItemTypeProduct = "product"
	ItemTypeWeee    = "weee"
)

// TaxClassKind discriminates how a TaxClassKey identifies a class.
type TaxClassKind string

const (
	// TaxClassKindID references a class by its numeric identifier.
	TaxClassKindID TaxClassKind = "id"
	// TaxClassKindName references a class by its unique display name.
	// The engine resolves the name to an id once per calculation.
	TaxClassKindName TaxClassKind = "name"
)

// TaxClassKey identifies a customer or product tax class either by numeric
// id or by name. A name must resolve to exactly one id within a calculation.
type TaxClassKey struct {
	Kind  TaxClassKind `json:"kind" validate:"required,oneof=id name"`
	Value string       `json:"value" validate:"required"`
}

// ClassID builds a TaxClassKey referencing a class by numeric id.
func ClassID(id int) *TaxClassKey {
	return &TaxClassKey{Kind: TaxClassKindID, Value: fmt.Sprintf("%d", id)}
}

// ClassName builds a TaxClassKey referencing a class by name.
func ClassName(name string) *TaxClassKey {
	return &TaxClassKey{Kind: TaxClassKindName, Value: name}
}

// Address is the rate-lookup key for a taxable destination. More specific
// postcode matches take precedence over region-only matches.
type Address struct {
	Country  string `json:"country"`
	Region   string `json:"region"`
	Postcode string `json:"postcode"`
}

// QuoteItem is one taxable line of a quote.
type QuoteItem struct {
	// Code is unique within the quote. Fee items reference their parent
	// product through it.
	Code string `json:"code" validate:"required"`

	// Type is "product", "weee", or any caller-defined value.
	Type string `json:"type"`

	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// TaxClass is the item's product tax class. A nil class means the item
	// is non-taxable; a class that cannot be resolved is an error.
	TaxClass *TaxClassKey `json:"tax_class,omitempty"`

	// IsTaxIncluded marks UnitPrice as already containing tax at the
	// item's resolved rate.
	IsTaxIncluded bool `json:"is_tax_included"`

	// ParentCode links a bundle child to its container item.
	ParentCode string `json:"parent_code,omitempty"`

	// AssociatedItemCode links a fee line (weee) to the product it belongs
	// to. The fee is taxed on its own but reported as associated.
	AssociatedItemCode string `json:"associated_item_code,omitempty"`

	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// QuoteDetails is a tax calculation request.
type QuoteDetails struct {
	ShippingAddress  *Address     `json:"shipping_address,omitempty"`
	BillingAddress   *Address     `json:"billing_address,omitempty"`
	CustomerTaxClass *TaxClassKey `json:"customer_tax_class,omitempty"`
	Items            []QuoteItem  `json:"items" validate:"required,min=1,dive"`
}

// TaxAddress returns the address used for rate resolution: shipping when
// present, billing otherwise. May be nil; the engine then falls back to the
// store default.
func (q *QuoteDetails) TaxAddress() *Address {
	if q.ShippingAddress != nil {
		return q.ShippingAddress
	}
	return q.BillingAddress
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural and numeric constraints on the quote.
// All failures are EINVALID domain errors; the engine rejects the whole
// quote before any aggregation.
func (q *QuoteDetails) Validate() error {
	const op = "quote.validate"

	if err := validate.Struct(q); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return Errorf(EINVALID, op, "field %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return WrapError(err, EINVALID, op, "invalid quote")
	}

	seen := make(map[string]struct{}, len(q.Items))
	for i := range q.Items {
		it := &q.Items[i]
		if _, dup := seen[it.Code]; dup {
			return Errorf(EINVALID, op, "duplicate item code %q", it.Code)
		}
		seen[it.Code] = struct{}{}

		if !it.Quantity.IsPositive() {
			return Errorf(EINVALID, op, "item %q requires a positive quantity", it.Code)
		}
		if it.UnitPrice.IsNegative() {
			return Errorf(EINVALID, op, "item %q has a negative unit price", it.Code)
		}
		if it.DiscountAmount.IsNegative() {
			return Errorf(EINVALID, op, "item %q has a negative discount amount", it.Code)
		}
	}

	// References may point forward, so check them after collecting codes.
	for i := range q.Items {
		it := &q.Items[i]
		if it.ParentCode != "" {
			if _, ok := seen[it.ParentCode]; !ok {
				return Errorf(EINVALID, op, "item %q references unknown parent %q", it.Code, it.ParentCode)
			}
		}
		if it.AssociatedItemCode != "" {
			if _, ok := seen[it.AssociatedItemCode]; !ok {
				return Errorf(EINVALID, op, "item %q references unknown associated item %q", it.Code, it.AssociatedItemCode)
			}
		}
	}

	return nil
}
