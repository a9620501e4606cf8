// Package v1 provides the POS HTTP API consumed by the cashier terminal.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"chuipos/internal/core/apperror"
	"chuipos/internal/infrastructure/http/v1/handlers"
	"chuipos/internal/infrastructure/http/v1/middleware"
	"chuipos/internal/infrastructure/storage/memory"
	"chuipos/pkg/logger"
)

// BasePath is the prefix every terminal endpoint lives under.
const BasePath = "/api/pos"

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Store backs every endpoint
	Store *memory.Store

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// TokenIssuer signs tokens on login
	TokenIssuer handlers.TokenIssuer
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()
	api := router.Group(BasePath)

	// Public endpoints
	{
		health := handlers.NewHealthHandler(base)
		auth := handlers.NewAuthHandler(base, cfg.Store, cfg.TokenIssuer)

		api.GET("/health", health.Health)
		api.POST("/auth/login", auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator))

	registerCatalogRoutes(protected, base, cfg)
	registerCustomerRoutes(protected, base, cfg)
	registerSaleRoutes(protected, base, cfg)
	registerHeldOrderRoutes(protected, base, cfg)

	router.NoRoute(func(c *gin.Context) {
		base.Error(c, notFound(c))
	})

	return router
}

// NewHandler wraps the router with response compression.
func NewHandler(cfg RouterConfig) http.Handler {
	return gzhttp.GzipHandler(NewRouter(cfg))
}

func notFound(c *gin.Context) error {
	return apperror.NewNotFound("Endpoint", c.Request.Method+" "+c.Request.URL.Path)
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewCatalogHandler(base, cfg.Store)
	read := middleware.RequirePermission(memory.PermCatalogRead)

	rg.GET("/products", read, h.ListProducts)
	rg.GET("/categories", read, h.ListCategories)
}

func registerCustomerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewCustomerHandler(base, cfg.Store)

	rg.GET("/customers", middleware.RequirePermission(memory.PermCustomerRead), h.List)
	rg.POST("/customers", middleware.RequirePermission(memory.PermCustomerCreate), h.Create)
}

func registerSaleRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewSaleHandler(base, cfg.Store)

	rg.POST("/sales", middleware.RequirePermission(memory.PermSaleCreate), h.Create)
}

func registerHeldOrderRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewHeldOrderHandler(base, cfg.Store)
	held := rg.Group("/held-orders", middleware.RequirePermission(memory.PermHeldManage))

	held.GET("", h.List)
	held.POST("", h.Create)
	held.PUT("/:id", h.Update)
	held.DELETE("/:id", h.Delete)
}
