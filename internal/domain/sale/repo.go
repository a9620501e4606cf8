package sale

import "context"

// Repository is the remote sale submission API. Submission is all-or-nothing.
type Repository interface {
	CreateSale(ctx context.Context, req Request) error
}
