package dto

import (
	"chuipos/internal/domain/customer"
)

// CreateCustomerRequest for adding a customer at the counter.
type CreateCustomerRequest struct {
	Name        string  `json:"name" binding:"required"`
	PhoneNumber *string `json:"phoneNumber"`
}

// ToDomain converts to domain request.
func (r CreateCustomerRequest) ToDomain() customer.CreateRequest {
	return customer.CreateRequest{Name: r.Name, PhoneNumber: r.PhoneNumber}
}

// CustomerResponse represents a customer.
type CustomerResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
}

// FromCustomer creates response from a domain customer.
func FromCustomer(c customer.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, PhoneNumber: c.PhoneNumber}
}

// FromCustomers maps a customer list.
func FromCustomers(in []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromCustomer(c))
	}
	return out
}
