package dto

import (
	appctx "chuipos/internal/core/context"
)

// LoginRequest for cashier login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required,len=4,numeric"`
}

// LoginResponse carries the issued token and the cashier profile.
type LoginResponse struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Permissions []string `json:"permissions"`
}

// NewLoginResponse creates response from an authenticated user.
func NewLoginResponse(token string, u *appctx.UserContext) LoginResponse {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return LoginResponse{
		Token:       token,
		Username:    u.Username,
		FullName:    u.FullName,
		Permissions: perms,
	}
}
