// Package customer provides the customer directory used for sale attribution.
package customer

import (
	"context"
	"strings"

	"chuipos/internal/core/apperror"
)

// WalkInName is the display name used when the walk-in record is not in the
// loaded customer list.
const WalkInName = "Walk-in Customer"

// Customer is a buyer a sale or held order is attributed to.
type Customer struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// Matches reports whether query is contained in the name (case-insensitive)
// or in the phone number.
func (c Customer) Matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
		return true
	}
	return c.PhoneNumber != nil && strings.Contains(*c.PhoneNumber, query)
}

// Form is the immutable state of the "add customer" dialog.
type Form struct {
	Name  string
	Phone string
}

// FormChanges lists the fields to replace; nil fields are kept.
type FormChanges struct {
	Name  *string
	Phone *string
}

// WithChanges returns a copy of f with the non-nil fields of ch applied.
func (f Form) WithChanges(ch FormChanges) Form {
	if ch.Name != nil {
		f.Name = *ch.Name
	}
	if ch.Phone != nil {
		f.Phone = *ch.Phone
	}
	return f
}

// Validate checks form invariants.
func (f Form) Validate(_ context.Context) error {
	if strings.TrimSpace(f.Name) == "" {
		return apperror.NewValidation("customer name is required").WithDetail("field", "name")
	}
	return nil
}

// CreateRequest is the payload for creating a customer.
type CreateRequest struct {
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
}

// Request converts the form to a create request; a blank phone is omitted.
func (f Form) Request() CreateRequest {
	req := CreateRequest{Name: strings.TrimSpace(f.Name)}
	if phone := strings.TrimSpace(f.Phone); phone != "" {
		req.PhoneNumber = &phone
	}
	return req
}
