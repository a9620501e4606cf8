package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appctx "chuipos/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Gin context keys set by this package.
const (
	KeyTraceID   = "trace_id"
	KeyRequestID = "request_id"
	KeyUsername  = "username"
)

// maxIDLength bounds client-supplied ids before they reach the logs.
const maxIDLength = 64

// Trace adds request tracing context.
// The terminal sends X-Request-ID on every call; it is echoed back so both
// sides log the same id. The trace id defaults to the request id.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := inboundID(c.GetHeader(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		traceID := inboundID(c.GetHeader(HeaderTraceID))
		if traceID == "" {
			traceID = requestID
		}

		ctx := appctx.WithTrace(c.Request.Context(), &appctx.TraceContext{
			TraceID:   traceID,
			RequestID: requestID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Set(KeyTraceID, traceID)
		c.Set(KeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}

// inboundID drops oversized or non-printable ids.
func inboundID(v string) string {
	if len(v) > maxIDLength {
		return ""
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return ""
		}
	}
	return v
}
