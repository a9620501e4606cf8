// Package catalog provides the read-only product catalog used to fill the cart.
package catalog

import (
	"chuipos/internal/core/types"
)

// Category groups products on the sale screen.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Unit is a measurement unit (pcs, kg, l).
type Unit struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// Product is a sellable catalog item.
type Product struct {
	ID      int64   `json:"id"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Barcode *string `json:"barcode,omitempty"`

	// Price is the unit price; for variable-priced products it is the
	// reference price per sale unit used to derive quantity from an amount.
	Price types.Money `json:"price"`

	// IsVariablePriced marks products sold by cash amount (e.g. fuel, produce).
	IsVariablePriced bool `json:"isVariablePriced"`

	SaleUnit Unit     `json:"saleUnit"`
	Category Category `json:"category"`
	IsActive bool     `json:"isActive"`
}

// SaleUnitName returns the short unit label shown next to quantities.
func (p Product) SaleUnitName() string {
	if p.SaleUnit.ShortName != "" {
		return p.SaleUnit.ShortName
	}
	return p.SaleUnit.Name
}
