package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"chuipos/internal/infrastructure/http/v1/dto"
)

// HealthHandler answers terminal connectivity probes.
type HealthHandler struct {
	*BaseHandler
	now func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base, now: time.Now}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	h.OK(c, dto.StatusResponse{Status: "ok", Time: h.now().UTC()})
}
