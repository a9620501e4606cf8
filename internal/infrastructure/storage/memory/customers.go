package memory

import (
	"context"
	"strings"

	"chuipos/internal/core/apperror"
	"chuipos/internal/domain/customer"
)

// Customers lists all customers ordered by id.
func (s *Store) Customers(_ context.Context) []customer.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]customer.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// CreateCustomer adds a customer and assigns its id.
// Phone numbers are unique when present.
func (s *Store) CreateCustomer(ctx context.Context, req customer.CreateRequest) (customer.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return customer.Customer{}, apperror.NewValidation("Customer name is required").WithDetail("field", "name")
	}

	var phone *string
	if req.PhoneNumber != nil {
		if p := strings.TrimSpace(*req.PhoneNumber); p != "" {
			phone = &p
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if phone != nil {
		for _, c := range s.customers {
			if c.PhoneNumber != nil && *c.PhoneNumber == *phone {
				return customer.Customer{}, apperror.NewConflict("A customer with this phone number already exists").
					WithDetail("phoneNumber", *phone)
			}
		}
	}

	c := customer.Customer{ID: s.nextCustomerID, Name: name, PhoneNumber: phone}
	s.nextCustomerID++
	s.customers = append(s.customers, c)

	s.log.WithContext(ctx).Infow("customer created", "customer_id", c.ID)
	return c, nil
}

// customer must be called with s.mu held.
func (s *Store) customer(id int64) (customer.Customer, bool) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return customer.Customer{}, false
}
