package memory

import (
	"context"
	"strings"

	"chuipos/internal/core/apperror"
	"chuipos/internal/domain/catalog"
)

// ProductFilter narrows a product listing. Zero value lists everything active.
type ProductFilter struct {
	CategoryID *int64
	// Query matches name, code or barcode (case-insensitive contains)
	Query string
}

func (f ProductFilter) matches(p catalog.Product) bool {
	if !p.IsActive {
		return false
	}
	if f.CategoryID != nil && p.Category.ID != *f.CategoryID {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Code), q) {
		return true
	}
	return p.Barcode != nil && strings.Contains(strings.ToLower(*p.Barcode), q)
}

// AddCategory registers a category.
func (s *Store) AddCategory(_ context.Context, c catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.ID == c.ID {
			return apperror.NewConflict("category already exists").WithDetail("id", c.ID)
		}
	}
	s.categories = append(s.categories, c)
	return nil
}

// AddProduct registers a product. Its category must already exist.
func (s *Store) AddProduct(_ context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.product(p.ID); ok {
		return apperror.NewConflict("product already exists").WithDetail("id", p.ID)
	}
	found := false
	for _, c := range s.categories {
		if c.ID == p.Category.ID {
			p.Category = c
			found = true
			break
		}
	}
	if !found {
		return apperror.NewNotFound("category", p.Category.ID)
	}
	s.products = append(s.products, p)
	return nil
}

// Products lists active products matching f in insertion order.
func (s *Store) Products(_ context.Context, f ProductFilter) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists all categories.
func (s *Store) Categories(_ context.Context) []catalog.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// product must be called with s.mu held.
func (s *Store) product(id int64) (catalog.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}
