package dto

import (
	"chuipos/internal/domain/catalog"
)

// ProductQuery holds product listing filters.
type ProductQuery struct {
	CategoryID *int64 `form:"categoryId"`
	Query      string `form:"q"`
}

// UnitResponse represents a sale unit.
type UnitResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// CategoryResponse represents a product category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// FromCategory creates response from a domain category.
func FromCategory(c catalog.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}

// FromCategories maps a category list.
func FromCategories(in []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromCategory(c))
	}
	return out
}

// ProductResponse represents a sellable product.
type ProductResponse struct {
	ID               int64            `json:"id"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	Barcode          *string          `json:"barcode"`
	Price            float64          `json:"price"`
	IsVariablePriced bool             `json:"isVariablePriced"`
	SaleUnit         UnitResponse     `json:"saleUnit"`
	Category         CategoryResponse `json:"category"`
	IsActive         bool             `json:"isActive"`
}

// FromProduct creates response from a domain product.
func FromProduct(p catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Barcode:          p.Barcode,
		Price:            money(p.Price),
		IsVariablePriced: p.IsVariablePriced,
		SaleUnit:         UnitResponse{ID: p.SaleUnit.ID, Name: p.SaleUnit.Name, ShortName: p.SaleUnit.ShortName},
		Category:         FromCategory(p.Category),
		IsActive:         p.IsActive,
	}
}

// FromProducts maps a product list.
func FromProducts(in []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(in))
	for _, p := range in {
		out = append(out, FromProduct(p))
	}
	return out
}
