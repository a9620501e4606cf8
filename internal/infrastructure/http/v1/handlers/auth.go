package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appctx "chuipos/internal/core/context"
	"chuipos/internal/infrastructure/http/v1/dto"
	"chuipos/pkg/logger"
)

// Authenticator checks cashier credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, pin string) (*appctx.UserContext, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateAccessToken(user appctx.UserContext) (string, time.Time, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	users  Authenticator
	tokens TokenIssuer
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, users Authenticator, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		users:       users,
		tokens:      tokens,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.users.Authenticate(ctx, req.Username, req.PIN)
	if err != nil {
		h.Error(c, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateAccessToken(*user)
	if err != nil {
		h.Error(c, err)
		return
	}

	logger.Info(ctx, "cashier logged in", "username", user.Username, "expires_at", expiresAt)
	h.OK(c, dto.NewLoginResponse(token, user))
}
