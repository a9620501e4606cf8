package dto

import (
	"time"

	"chuipos/internal/domain/sale"
	"chuipos/internal/infrastructure/storage/memory"
)

// SaleItemRequest is one sold line.
type SaleItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
}

// PaymentRequest is one tender.
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Notes  *string `json:"notes"`
}

// CreateSaleRequest for finalizing a sale.
// IsCreditSale is informational; the server derives it from the tenders.
type CreateSaleRequest struct {
	Items        []SaleItemRequest `json:"items"`
	Payments     []PaymentRequest  `json:"payments"`
	CustomerID   int64             `json:"customerId"`
	Discount     float64           `json:"discount"`
	IsCreditSale bool              `json:"isCreditSale"`
}

// ToDomain converts to domain request. Unknown tenders are rejected.
func (r CreateSaleRequest) ToDomain() (sale.Request, error) {
	out := sale.Request{
		Items:      make([]sale.Item, 0, len(r.Items)),
		Payments:   make([]sale.Payment, 0, len(r.Payments)),
		CustomerID: r.CustomerID,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, sale.Item{
			ProductID: it.ProductID,
			Quantity:  fromFloat(it.Quantity),
			Price:     fromFloat(it.Price),
			Discount:  fromFloat(it.Discount),
		})
	}
	for _, p := range r.Payments {
		method, err := sale.ParseMethod(p.Method)
		if err != nil {
			return sale.Request{}, err
		}
		out.Payments = append(out.Payments, sale.Payment{
			Amount: fromFloat(p.Amount),
			Method: method,
			Notes:  p.Notes,
		})
	}
	return out, nil
}

// SaleResponse acknowledges a recorded sale.
type SaleResponse struct {
	ID           int64     `json:"id"`
	Ref          string    `json:"ref"`
	Total        float64   `json:"total"`
	Paid         float64   `json:"paid"`
	IsCreditSale bool      `json:"isCreditSale"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromSale creates response from a stored sale.
func FromSale(s memory.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		Ref:          s.Ref,
		Total:        money(s.Total),
		Paid:         money(s.Paid),
		IsCreditSale: s.IsCreditSale,
		CreatedAt:    s.CreatedAt,
	}
}
