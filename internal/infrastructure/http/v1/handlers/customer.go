package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"chuipos/internal/domain/customer"
	"chuipos/internal/infrastructure/http/v1/dto"
)

// CustomerStore lists and adds customers.
type CustomerStore interface {
	Customers(ctx context.Context) []customer.Customer
	CreateCustomer(ctx context.Context, req customer.CreateRequest) (customer.Customer, error)
}

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	*BaseHandler
	store CustomerStore
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, store CustomerStore) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, store: store}
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	h.OK(c, dto.FromCustomers(h.store.Customers(c.Request.Context())))
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.store.CreateCustomer(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromCustomer(created))
}
