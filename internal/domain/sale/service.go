package sale

import (
	"context"
	"fmt"

	"chuipos/pkg/logger"
)

// Service submits finalized sales.
type Service struct {
	repo Repository
}

// NewService creates a new sale service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit validates req locally and sends it. Validation failures never reach
// the backend.
func (s *Service) Submit(ctx context.Context, req Request) error {
	if err := req.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.CreateSale(ctx, req); err != nil {
		logger.Error(ctx, "failed to create sale", "error", err, "customer_id", req.CustomerID)
		return fmt.Errorf("create sale: %w", err)
	}

	logger.Info(ctx, "sale created",
		"customer_id", req.CustomerID,
		"items", len(req.Items),
		"total", req.Total().StringFixed(2))
	return nil
}
