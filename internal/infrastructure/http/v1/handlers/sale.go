package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"chuipos/internal/domain/sale"
	"chuipos/internal/infrastructure/http/v1/dto"
	"chuipos/internal/infrastructure/storage/memory"
)

// SaleStore records sales.
type SaleStore interface {
	CreateSale(ctx context.Context, req sale.Request) (memory.Sale, error)
}

// SaleHandler accepts finalized sales.
type SaleHandler struct {
	*BaseHandler
	store SaleStore
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, store SaleStore) *SaleHandler {
	return &SaleHandler{BaseHandler: base, store: store}
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	recorded, err := h.store.CreateSale(c.Request.Context(), domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromSale(recorded))
}
