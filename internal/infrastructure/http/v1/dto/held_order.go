package dto

import (
	"time"

	"chuipos/internal/domain/heldorder"
)

// HoldOrderItemRequest is one parked line.
type HoldOrderItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// HoldOrderRequest for creating or replacing a held order.
type HoldOrderRequest struct {
	Items      []HoldOrderItemRequest `json:"items"`
	CustomerID int64                  `json:"customerId"`
}

// ToDomain converts to domain request.
func (r HoldOrderRequest) ToDomain() heldorder.Request {
	out := heldorder.Request{
		Items:      make([]heldorder.ItemRequest, 0, len(r.Items)),
		CustomerID: r.CustomerID,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, heldorder.ItemRequest{
			ProductID: it.ProductID,
			Quantity:  fromFloat(it.Quantity),
		})
	}
	return out
}

// HeldOrderItemResponse is one parked line with catalog details.
type HeldOrderItemResponse struct {
	ProductID        int64   `json:"productId"`
	ProductName      string  `json:"productName"`
	Quantity         float64 `json:"quantity"`
	Price            float64 `json:"price"`
	IsVariablePriced bool    `json:"isVariablePriced"`
}

// HeldOrderResponse represents a held order.
type HeldOrderResponse struct {
	ID           int64                   `json:"id"`
	Ref          string                  `json:"ref"`
	Items        []HeldOrderItemResponse `json:"items"`
	CustomerID   int64                   `json:"customerId"`
	CustomerName string                  `json:"customerName"`
	CreatedAt    *string                 `json:"createdAt"`
}

// FromHeldOrder creates response from a domain held order.
func FromHeldOrder(h heldorder.HeldOrder) HeldOrderResponse {
	out := HeldOrderResponse{
		ID:           h.ID,
		Ref:          h.Ref,
		Items:        make([]HeldOrderItemResponse, 0, len(h.Items)),
		CustomerID:   h.CustomerID,
		CustomerName: h.CustomerName,
	}
	for _, it := range h.Items {
		out.Items = append(out.Items, HeldOrderItemResponse{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			Quantity:         money(it.Quantity),
			Price:            money(it.Price),
			IsVariablePriced: it.IsVariablePriced,
		})
	}
	if h.CreatedAt != nil {
		ts := h.CreatedAt.Format(time.RFC3339)
		out.CreatedAt = &ts
	}
	return out
}

// FromHeldOrders maps a held order list.
func FromHeldOrders(in []heldorder.HeldOrder) []HeldOrderResponse {
	out := make([]HeldOrderResponse, 0, len(in))
	for _, h := range in {
		out = append(out, FromHeldOrder(h))
	}
	return out
}
