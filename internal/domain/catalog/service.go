package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service provides catalog lookups for the sale screen.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Products lists all products, or only those in categoryID when non-nil.
func (s *Service) Products(ctx context.Context, categoryID *int64) ([]Product, error) {
	if categoryID == nil {
		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		return products, nil
	}

	products, err := s.repo.ListProductsByCategory(ctx, *categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products of category %d: %w", *categoryID, err)
	}
	return products, nil
}

// Categories lists product categories.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Search runs a single, non-debounced product search.
// A blank query yields no results without calling the backend.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.repo.SearchProducts(ctx, query)
}
