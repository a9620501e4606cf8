package customer

import "context"

// Repository is the remote customer directory.
type Repository interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	CreateCustomer(ctx context.Context, req CreateRequest) (*Customer, error)
}
