package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxClassType separates the two class namespaces bound by rules.
type TaxClassType string

const (
	CustomerClass TaxClassType = "CUSTOMER"
	ProductClass  TaxClassType = "PRODUCT"
)

// TaxClass is reference data: a category of customers or products used to
// select applicable tax rules.
type TaxClass struct {
	ID   int          `json:"id"`
	Type TaxClassType `json:"type"`
	Name string       `json:"name"`
}

// TaxRate is a single percentage tied to a jurisdiction. Immutable once
// created.
type TaxRate struct {
	ID       string          `json:"id"`
	Percent  decimal.Decimal `json:"percent"`
	Country  string          `json:"country"`
	Region   string          `json:"region"`
	Postcode string          `json:"postcode,omitempty"`

	// Code is the display code. Empty means the conventional
	// "{country} - {region} - {percent}" form (postcode appended when
	// postcode-scoped).
	Code string `json:"code,omitempty"`
}

// DisplayCode returns the rate's code, deriving the conventional form when
// none was set explicitly.
func (r TaxRate) DisplayCode() string {
	if r.Code != "" {
		return r.Code
	}
	code := fmt.Sprintf("%s - %s - %s", r.Country, r.Region, r.Percent.String())
	if r.Postcode != "" {
		code = fmt.Sprintf("%s - %s", code, r.Postcode)
	}
	return code
}

// PostcodeScoped reports whether the rate only applies to specific
// postcodes.
func (r TaxRate) PostcodeScoped() bool {
	return r.Postcode != "" && r.Postcode != "*"
}

// TaxRule binds customer and product tax classes to an ordered list of
// rates. Priority groups rates into tiers: rates sharing a priority combine
// additively, different priorities compound sequentially. SortOrder only
// breaks display-order ties within a priority and never affects the math.
type TaxRule struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Priority         int       `json:"priority"`
	SortOrder        int       `json:"sort_order"`
	CustomerClassIDs []int     `json:"customer_class_ids"`
	ProductClassIDs  []int     `json:"product_class_ids"`
	Rates            []TaxRate `json:"rates"`
}

// AppliesTo reports whether the rule binds the given customer/product class
// pair.
func (r TaxRule) AppliesTo(customerClassID, productClassID int) bool {
	return containsInt(r.CustomerClassIDs, customerClassID) && containsInt(r.ProductClassIDs, productClassID)
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
