// Package middleware provides HTTP middleware components.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"chuipos/internal/core/apperror"
	"chuipos/pkg/logger"
)

// Recovery turns a handler panic into a 500 response. The stack goes to the
// log only. http.ErrAbortHandler is re-raised so net/http drops the
// connection as the handler intended.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger.Error(c.Request.Context(), "panic recovered",
				"route", c.FullPath(),
				"panic", rec,
				"stack", string(debug.Stack()),
			)

			_ = c.Error(apperror.NewInternal(fmt.Errorf("panic: %v", rec)).
				WithDetail("request_id", c.GetString(KeyRequestID)))
			c.Abort()

			// ErrorHandler's deferred write never runs after a panic.
			writeError(c)
		}()
		c.Next()
	}
}
