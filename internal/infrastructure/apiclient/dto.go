package apiclient

import (
	"time"

	"chuipos/internal/core/types"
	"chuipos/internal/domain/auth"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
)

// Responses decode numbers straight into decimals; requests send plain JSON
// numbers because that is what the backend parses.

// --- Auth ---

type loginResponse struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Permissions []string `json:"permissions"`
}

func (r loginResponse) toDomain() *auth.Session {
	return &auth.Session{
		Token:       r.Token,
		Username:    r.Username,
		FullName:    r.FullName,
		Permissions: r.Permissions,
	}
}

// --- Catalog ---

type unitResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (r categoryResponse) toDomain() catalog.Category {
	return catalog.Category{ID: r.ID, Name: r.Name, Code: r.Code}
}

type productResponse struct {
	ID               int64            `json:"id"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	Barcode          *string          `json:"barcode"`
	Price            types.Money      `json:"price"`
	IsVariablePriced bool             `json:"isVariablePriced"`
	SaleUnit         unitResponse     `json:"saleUnit"`
	Category         categoryResponse `json:"category"`
	IsActive         bool             `json:"isActive"`
}

func (r productResponse) toDomain() catalog.Product {
	return catalog.Product{
		ID:               r.ID,
		Code:             r.Code,
		Name:             r.Name,
		Barcode:          r.Barcode,
		Price:            r.Price,
		IsVariablePriced: r.IsVariablePriced,
		SaleUnit:         catalog.Unit{ID: r.SaleUnit.ID, Name: r.SaleUnit.Name, ShortName: r.SaleUnit.ShortName},
		Category:         r.Category.toDomain(),
		IsActive:         r.IsActive,
	}
}

func productsToDomain(in []productResponse) []catalog.Product {
	out := make([]catalog.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.toDomain())
	}
	return out
}

// --- Customers ---

type customerResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (r customerResponse) toDomain() customer.Customer {
	return customer.Customer{ID: r.ID, Name: r.Name, PhoneNumber: r.PhoneNumber}
}

type createCustomerRequest struct {
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
}

// --- Sales ---

type saleItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Notes  *string `json:"notes,omitempty"`
}

type createSaleRequest struct {
	Items        []saleItemRequest `json:"items"`
	Payments     []paymentRequest  `json:"payments"`
	CustomerID   int64             `json:"customerId"`
	Discount     float64           `json:"discount"`
	IsCreditSale bool              `json:"isCreditSale"`
}

// wireMethod is the tender name the backend understands.
func wireMethod(m sale.PaymentMethod) string {
	if m == sale.MethodMobileMoney {
		return "MPESA"
	}
	return string(m)
}

func newCreateSaleRequest(req sale.Request) createSaleRequest {
	out := createSaleRequest{
		Items:      make([]saleItemRequest, 0, len(req.Items)),
		Payments:   make([]paymentRequest, 0, len(req.Payments)),
		CustomerID: req.CustomerID,
	}
	for _, it := range req.Items {
		out.Items = append(out.Items, saleItemRequest{
			ProductID: it.ProductID,
			Quantity:  types.Float64(it.Quantity),
			Price:     types.Float64(it.Price),
			Discount:  types.Float64(it.Discount),
		})
	}
	for _, p := range req.Payments {
		if p.Method == sale.MethodCredit {
			out.IsCreditSale = true
		}
		out.Payments = append(out.Payments, paymentRequest{
			Amount: types.Float64(p.Amount),
			Method: wireMethod(p.Method),
			Notes:  p.Notes,
		})
	}
	return out
}

// --- Held orders ---

type holdOrderItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

type holdOrderRequest struct {
	Items      []holdOrderItemRequest `json:"items"`
	CustomerID int64                  `json:"customerId"`
}

func newHoldOrderRequest(req heldorder.Request) holdOrderRequest {
	out := holdOrderRequest{
		Items:      make([]holdOrderItemRequest, 0, len(req.Items)),
		CustomerID: req.CustomerID,
	}
	for _, it := range req.Items {
		out.Items = append(out.Items, holdOrderItemRequest{
			ProductID: it.ProductID,
			Quantity:  types.Float64(it.Quantity),
		})
	}
	return out
}

type heldOrderItemResponse struct {
	ProductID        int64          `json:"productId"`
	ProductName      string         `json:"productName"`
	Quantity         types.Quantity `json:"quantity"`
	Price            types.Money    `json:"price"`
	IsVariablePriced bool           `json:"isVariablePriced"`
}

type heldOrderResponse struct {
	ID           int64                   `json:"id"`
	Ref          string                  `json:"ref"`
	Items        []heldOrderItemResponse `json:"items"`
	CustomerID   int64                   `json:"customerId"`
	CustomerName string                  `json:"customerName"`
	CreatedAt    *string                 `json:"createdAt"`
}

// createdAtLayouts covers RFC 3339 and the zone-less local timestamps some
// backends emit.
var createdAtLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

func (r heldOrderResponse) toDomain() heldorder.HeldOrder {
	h := heldorder.HeldOrder{
		ID:           r.ID,
		Ref:          r.Ref,
		Items:        make([]heldorder.Item, 0, len(r.Items)),
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
	}
	for _, it := range r.Items {
		h.Items = append(h.Items, heldorder.Item{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			Quantity:         it.Quantity,
			Price:            it.Price,
			IsVariablePriced: it.IsVariablePriced,
		})
	}
	if r.CreatedAt != nil {
		for _, layout := range createdAtLayouts {
			if ts, err := time.Parse(layout, *r.CreatedAt); err == nil {
				h.CreatedAt = &ts
				break
			}
		}
	}
	return h
}
