package middleware

import (
	"github.com/gin-gonic/gin"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
)

// RequirePermission rejects the request unless the authenticated cashier
// holds permission. Must run after Auth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if appctx.GetUser(ctx) == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if !appctx.HasPermission(ctx, permission) {
			_ = c.Error(apperror.NewForbidden("You do not have permission to perform this action").
				WithDetail("required_permission", permission))
			c.Abort()
			return
		}
		c.Next()
	}
}
