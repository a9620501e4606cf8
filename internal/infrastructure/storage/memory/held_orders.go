package memory

import (
	"context"
	"sort"

	"chuipos/internal/core/apperror"
	"chuipos/internal/domain/heldorder"
)

// HeldOrders lists held orders, oldest first.
func (s *Store) HeldOrders(_ context.Context) []heldorder.HeldOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]heldorder.HeldOrder, 0, len(s.heldOrders))
	for _, h := range s.heldOrders {
		out = append(out, cloneHeldOrder(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateHeldOrder parks a cart under a new HO reference.
// Names and prices are taken from the catalog at hold time.
func (s *Store) CreateHeldOrder(ctx context.Context, req heldorder.Request) (heldorder.HeldOrder, error) {
	if err := req.Validate(ctx); err != nil {
		return heldorder.HeldOrder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.buildHeldOrder(req)
	if err != nil {
		return heldorder.HeldOrder{}, err
	}

	now := s.now()
	order.ID = s.nextHeldOrderID
	order.Ref = s.nextRef(HeldOrderPrefix)
	order.CreatedAt = &now
	s.nextHeldOrderID++
	s.heldOrders[order.ID] = order

	s.log.WithContext(ctx).Infow("order held", "held_order_id", order.ID, "ref", order.Ref, "lines", len(order.Items))
	return cloneHeldOrder(order), nil
}

// UpdateHeldOrder replaces the lines and customer of an existing held order.
// The id, ref and creation time are kept.
func (s *Store) UpdateHeldOrder(ctx context.Context, id int64, req heldorder.Request) (heldorder.HeldOrder, error) {
	if err := req.Validate(ctx); err != nil {
		return heldorder.HeldOrder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.heldOrders[id]
	if !ok {
		return heldorder.HeldOrder{}, apperror.NewNotFound("Held order", id)
	}

	order, err := s.buildHeldOrder(req)
	if err != nil {
		return heldorder.HeldOrder{}, err
	}
	order.ID = existing.ID
	order.Ref = existing.Ref
	order.CreatedAt = existing.CreatedAt
	s.heldOrders[id] = order

	s.log.WithContext(ctx).Infow("held order updated", "held_order_id", id, "ref", order.Ref)
	return cloneHeldOrder(order), nil
}

// DeleteHeldOrder removes a held order.
func (s *Store) DeleteHeldOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.heldOrders[id]; !ok {
		return apperror.NewNotFound("Held order", id)
	}
	delete(s.heldOrders, id)

	s.log.WithContext(ctx).Infow("held order deleted", "held_order_id", id)
	return nil
}

// buildHeldOrder must be called with s.mu held.
func (s *Store) buildHeldOrder(req heldorder.Request) (heldorder.HeldOrder, error) {
	c, ok := s.customer(req.CustomerID)
	if !ok {
		return heldorder.HeldOrder{}, apperror.NewNotFound("Customer", req.CustomerID)
	}

	order := heldorder.HeldOrder{
		Items:        make([]heldorder.Item, 0, len(req.Items)),
		CustomerID:   c.ID,
		CustomerName: c.Name,
	}
	for _, it := range req.Items {
		p, ok := s.product(it.ProductID)
		if !ok {
			return heldorder.HeldOrder{}, apperror.NewNotFound("Product", it.ProductID)
		}
		order.Items = append(order.Items, heldorder.Item{
			ProductID:        p.ID,
			ProductName:      p.Name,
			Quantity:         it.Quantity,
			Price:            p.Price,
			IsVariablePriced: p.IsVariablePriced,
		})
	}
	return order, nil
}

func cloneHeldOrder(h heldorder.HeldOrder) heldorder.HeldOrder {
	h.Items = append([]heldorder.Item(nil), h.Items...)
	if h.CreatedAt != nil {
		ts := *h.CreatedAt
		h.CreatedAt = &ts
	}
	return h
}
