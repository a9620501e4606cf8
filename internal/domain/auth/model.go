// Package auth provides cashier sign-in for the terminal.
package auth

import (
	"context"
	"strings"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
)

// DefaultUsername is pre-filled on the login screen.
const DefaultUsername = "cashier01"

// PINLength is the number of digits in a cashier PIN.
const PINLength = 4

// Credentials is a username and PIN pair.
type Credentials struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// Validate checks credentials before they are sent.
func (c Credentials) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Username) == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if len(c.PIN) != PINLength {
		return apperror.NewValidation("PIN must be 4 digits").WithDetail("field", "pin")
	}
	for _, r := range c.PIN {
		if r < '0' || r > '9' {
			return apperror.NewValidation("PIN must be 4 digits").WithDetail("field", "pin")
		}
	}
	return nil
}

// Session is the signed-in cashier.
type Session struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the session grants code.
func (s Session) HasPermission(code string) bool {
	for _, p := range s.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// UserContext converts the session for request-scoped logging.
func (s Session) UserContext() *appctx.UserContext {
	return &appctx.UserContext{
		Username:    s.Username,
		FullName:    s.FullName,
		Permissions: append([]string(nil), s.Permissions...),
	}
}
