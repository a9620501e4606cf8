package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chuipos/internal/core/apperror"
	"chuipos/pkg/logger"
)

// ErrorBody is the error payload the terminal parses.
// Message is shown to the cashier verbatim.
type ErrorBody struct {
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		writeError(c)
	}
}

func writeError(c *gin.Context) {
	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	ctx := c.Request.Context()

	if appErr, ok := apperror.AsAppError(err); ok {
		if appErr.Err != nil {
			logger.Error(ctx, "request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}

		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ErrorBody{
			Message: appErr.Message,
			Status:  status,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	logger.Error(ctx, "unhandled error", "error", err)

	c.JSON(http.StatusInternalServerError, ErrorBody{
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
		Code:    apperror.CodeInternal,
		Details: map[string]any{"request_id": c.GetString(KeyRequestID)},
	})
}
