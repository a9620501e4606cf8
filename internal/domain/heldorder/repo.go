package heldorder

import "context"

// Repository is the remote held-order API.
type Repository interface {
	ListHeldOrders(ctx context.Context) ([]HeldOrder, error)
	CreateHeldOrder(ctx context.Context, req Request) (*HeldOrder, error)
	UpdateHeldOrder(ctx context.Context, id int64, req Request) (*HeldOrder, error)
	DeleteHeldOrder(ctx context.Context, id int64) error
}
