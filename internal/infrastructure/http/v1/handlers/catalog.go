package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"chuipos/internal/domain/catalog"
	"chuipos/internal/infrastructure/http/v1/dto"
	"chuipos/internal/infrastructure/storage/memory"
)

// CatalogStore lists products and categories.
type CatalogStore interface {
	Products(ctx context.Context, f memory.ProductFilter) []catalog.Product
	Categories(ctx context.Context) []catalog.Category
}

// CatalogHandler serves the read-only catalog.
type CatalogHandler struct {
	*BaseHandler
	store CatalogStore
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, store CatalogStore) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, store: store}
}

// ListProducts handles GET /products?categoryId=&q=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q dto.ProductQuery
	if !h.BindQuery(c, &q) {
		return
	}

	products := h.store.Products(c.Request.Context(), memory.ProductFilter{
		CategoryID: q.CategoryID,
		Query:      q.Query,
	})
	h.OK(c, dto.FromProducts(products))
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	h.OK(c, dto.FromCategories(h.store.Categories(c.Request.Context())))
}
