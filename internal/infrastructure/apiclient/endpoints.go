package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"chuipos/internal/domain/auth"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
)

const (
	loginEndpoint      = "auth/login"
	healthEndpoint     = "health"
	productsEndpoint   = "products"
	categoriesEndpoint = "categories"
	customersEndpoint  = "customers"
	salesEndpoint      = "sales"
	heldOrdersEndpoint = "held-orders"
)

var (
	_ auth.Repository      = (*Client)(nil)
	_ catalog.Repository   = (*Client)(nil)
	_ customer.Repository  = (*Client)(nil)
	_ sale.Repository      = (*Client)(nil)
	_ heldorder.Repository = (*Client)(nil)
)

// Login exchanges a username and PIN for a session. A rejected login is a
// server error carrying the backend message, not a session expiry.
func (cl *Client) Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	var resp loginResponse
	err := cl.do(ctx, call{method: http.MethodPost, path: loginEndpoint, body: creds, anonymous: true}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// CheckHealth succeeds when the backend answers 2xx.
func (cl *Client) CheckHealth(ctx context.Context) error {
	return cl.do(ctx, call{method: http.MethodGet, path: healthEndpoint, anonymous: true}, nil)
}

// --- Catalog ---

func (cl *Client) listProducts(ctx context.Context, query url.Values) ([]catalog.Product, error) {
	var resp []productResponse
	if err := cl.do(ctx, call{method: http.MethodGet, path: productsEndpoint, query: query}, &resp); err != nil {
		return nil, err
	}
	return productsToDomain(resp), nil
}

// ListProducts returns every product.
func (cl *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return cl.listProducts(ctx, nil)
}

// ListProductsByCategory returns products in one category.
func (cl *Client) ListProductsByCategory(ctx context.Context, categoryID int64) ([]catalog.Product, error) {
	return cl.listProducts(ctx, url.Values{"categoryId": {strconv.FormatInt(categoryID, 10)}})
}

// SearchProducts runs a server-side name/code/barcode search.
func (cl *Client) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	return cl.listProducts(ctx, url.Values{"q": {query}})
}

// ListCategories returns product categories.
func (cl *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var resp []categoryResponse
	if err := cl.do(ctx, call{method: http.MethodGet, path: categoriesEndpoint}, &resp); err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(resp))
	for _, c := range resp {
		out = append(out, c.toDomain())
	}
	return out, nil
}

// --- Customers ---

// ListCustomers returns the customer directory.
func (cl *Client) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	var resp []customerResponse
	if err := cl.do(ctx, call{method: http.MethodGet, path: customersEndpoint}, &resp); err != nil {
		return nil, err
	}
	out := make([]customer.Customer, 0, len(resp))
	for _, c := range resp {
		out = append(out, c.toDomain())
	}
	return out, nil
}

// CreateCustomer registers a customer.
func (cl *Client) CreateCustomer(ctx context.Context, req customer.CreateRequest) (*customer.Customer, error) {
	body := createCustomerRequest{Name: req.Name, PhoneNumber: req.PhoneNumber}
	var resp customerResponse
	if err := cl.do(ctx, call{method: http.MethodPost, path: customersEndpoint, body: body}, &resp); err != nil {
		return nil, err
	}
	c := resp.toDomain()
	return &c, nil
}

// --- Sales ---

// CreateSale submits a finalized sale.
func (cl *Client) CreateSale(ctx context.Context, req sale.Request) error {
	return cl.do(ctx, call{method: http.MethodPost, path: salesEndpoint, body: newCreateSaleRequest(req)}, nil)
}

// --- Held orders ---

func heldOrderPath(id int64) string {
	return heldOrdersEndpoint + "/" + strconv.FormatInt(id, 10)
}

// ListHeldOrders returns open held orders.
func (cl *Client) ListHeldOrders(ctx context.Context) ([]heldorder.HeldOrder, error) {
	var resp []heldOrderResponse
	if err := cl.do(ctx, call{method: http.MethodGet, path: heldOrdersEndpoint}, &resp); err != nil {
		return nil, err
	}
	out := make([]heldorder.HeldOrder, 0, len(resp))
	for _, h := range resp {
		out = append(out, h.toDomain())
	}
	return out, nil
}

// CreateHeldOrder parks a cart.
func (cl *Client) CreateHeldOrder(ctx context.Context, req heldorder.Request) (*heldorder.HeldOrder, error) {
	var resp heldOrderResponse
	err := cl.do(ctx, call{method: http.MethodPost, path: heldOrdersEndpoint, body: newHoldOrderRequest(req)}, &resp)
	if err != nil {
		return nil, err
	}
	h := resp.toDomain()
	return &h, nil
}

// UpdateHeldOrder overwrites a held order in place.
func (cl *Client) UpdateHeldOrder(ctx context.Context, id int64, req heldorder.Request) (*heldorder.HeldOrder, error) {
	var resp heldOrderResponse
	err := cl.do(ctx, call{method: http.MethodPut, path: heldOrderPath(id), body: newHoldOrderRequest(req)}, &resp)
	if err != nil {
		return nil, err
	}
	h := resp.toDomain()
	return &h, nil
}

// DeleteHeldOrder removes a held order.
func (cl *Client) DeleteHeldOrder(ctx context.Context, id int64) error {
	return cl.do(ctx, call{method: http.MethodDelete, path: heldOrderPath(id)}, nil)
}
