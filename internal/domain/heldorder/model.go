// Package heldorder provides carts parked server-side for later resumption.
package heldorder

import (
	"context"
	"time"

	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
)

// Item is one line of a held order.
type Item struct {
	ProductID        int64
	ProductName      string
	Quantity         types.Quantity
	Price            types.Money
	IsVariablePriced bool
}

// HeldOrder is a server-side snapshot of a parked cart.
type HeldOrder struct {
	ID           int64
	Ref          string
	Items        []Item
	CustomerID   int64
	CustomerName string
	CreatedAt    *time.Time
}

// Total is the sum of price*quantity over items.
func (h HeldOrder) Total() types.Money {
	total := types.Zero()
	for _, it := range h.Items {
		total = total.Add(it.Price.Mul(it.Quantity))
	}
	return total
}

// ItemRequest is one line sent when holding an order.
type ItemRequest struct {
	ProductID int64
	Quantity  types.Quantity
}

// Request is the payload for creating or updating a held order.
type Request struct {
	Items      []ItemRequest
	CustomerID int64
}

// Validate checks that the snapshot can be held.
func (r Request) Validate(_ context.Context) error {
	if len(r.Items) == 0 {
		return apperror.NewValidation("No items in cart").WithDetail("field", "items")
	}
	if r.CustomerID == 0 {
		return apperror.NewValidation("Please select a customer to hold the order.").
			WithDetail("field", "customerId")
	}
	for i, it := range r.Items {
		if !it.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
