package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"chuipos/internal/domain/heldorder"
	"chuipos/internal/infrastructure/http/v1/dto"
)

// HeldOrderStore parks and restores carts.
type HeldOrderStore interface {
	HeldOrders(ctx context.Context) []heldorder.HeldOrder
	CreateHeldOrder(ctx context.Context, req heldorder.Request) (heldorder.HeldOrder, error)
	UpdateHeldOrder(ctx context.Context, id int64, req heldorder.Request) (heldorder.HeldOrder, error)
	DeleteHeldOrder(ctx context.Context, id int64) error
}

// HeldOrderHandler serves held orders.
type HeldOrderHandler struct {
	*BaseHandler
	store HeldOrderStore
}

// NewHeldOrderHandler creates a new held order handler.
func NewHeldOrderHandler(base *BaseHandler, store HeldOrderStore) *HeldOrderHandler {
	return &HeldOrderHandler{BaseHandler: base, store: store}
}

// List handles GET /held-orders
func (h *HeldOrderHandler) List(c *gin.Context) {
	h.OK(c, dto.FromHeldOrders(h.store.HeldOrders(c.Request.Context())))
}

// Create handles POST /held-orders
func (h *HeldOrderHandler) Create(c *gin.Context) {
	var req dto.HoldOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	held, err := h.store.CreateHeldOrder(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromHeldOrder(held))
}

// Update handles PUT /held-orders/:id
func (h *HeldOrderHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.HoldOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	held, err := h.store.UpdateHeldOrder(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromHeldOrder(held))
}

// Delete handles DELETE /held-orders/:id
func (h *HeldOrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteHeldOrder(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
