package catalog

import "context"

// Repository is the remote catalog provider.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
