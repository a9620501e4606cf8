package memory

import (
	"context"
	"fmt"

	"chuipos/internal/core/types"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
)

// Permissions granted to seeded cashiers.
const (
	PermCatalogRead    = "catalog:read"
	PermCustomerRead   = "customer:read"
	PermCustomerCreate = "customer:create"
	PermSaleCreate     = "sale:create"
	PermHeldManage     = "held:manage"
)

// CashierPermissions is the full set a front counter cashier holds.
var CashierPermissions = []string{
	PermCatalogRead,
	PermCustomerRead,
	PermCustomerCreate,
	PermSaleCreate,
	PermHeldManage,
}

// Seed fills an empty store with a walk-in customer, one cashier and a small
// catalog covering standard, variable and zero-priced products.
// The walk-in customer must be the first customer so it gets id 1.
func Seed(ctx context.Context, s *Store) error {
	if err := s.AddUser(ctx, "cashier01", "Front Counter", "1234", CashierPermissions); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	if _, err := s.CreateCustomer(ctx, customerRequest("Walk-in Customer", "")); err != nil {
		return fmt.Errorf("seed walk-in customer: %w", err)
	}
	if _, err := s.CreateCustomer(ctx, customerRequest("Jane Wanjiku", "0712345678")); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	pcs := catalog.Unit{ID: 1, Name: "Pieces", ShortName: "pcs"}
	litre := catalog.Unit{ID: 2, Name: "Litre", ShortName: "l"}
	kg := catalog.Unit{ID: 3, Name: "Kilogram", ShortName: "kg"}

	categories := []catalog.Category{
		{ID: 1, Name: "Beverages", Code: "BEV"},
		{ID: 2, Name: "Fuel", Code: "FUEL"},
		{ID: 3, Name: "Produce", Code: "PROD"},
	}
	for _, c := range categories {
		if err := s.AddCategory(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Code, err)
		}
	}

	products := []catalog.Product{
		product(1, "SODA-500", "Soda 500ml", "60", false, pcs, categories[0]),
		product(2, "WATER-1L", "Water 1L", "50", false, pcs, categories[0]),
		product(3, "PETROL", "Petrol", "180.50", true, litre, categories[1]),
		product(4, "DIESEL", "Diesel", "168", true, litre, categories[1]),
		product(5, "TOMATO", "Tomatoes", "120", true, kg, categories[2]),
		// Priced at the counter; adding it by amount is rejected.
		product(6, "MISC", "Miscellaneous", "0", true, pcs, categories[2]),
	}
	for _, p := range products {
		if err := s.AddProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Code, err)
		}
	}
	return nil
}

func product(id int64, code, name, price string, variable bool, unit catalog.Unit, cat catalog.Category) catalog.Product {
	return catalog.Product{
		ID:               id,
		Code:             code,
		Name:             name,
		Price:            types.MustMoney(price),
		IsVariablePriced: variable,
		SaleUnit:         unit,
		Category:         cat,
		IsActive:         true,
	}
}

func customerRequest(name, phone string) customer.CreateRequest {
	req := customer.CreateRequest{Name: name}
	if phone != "" {
		req.PhoneNumber = &phone
	}
	return req
}
