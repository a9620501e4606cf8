package cart

import (
	"context"
	"fmt"

	"chuipos/internal/core/apperror"
	"chuipos/internal/domain/heldorder"
)

// HoldOrder parks the cart on the server. A cart resumed from a held order
// updates that order instead of creating a new one. On success the cart is
// cleared; on failure it is left as it was.
func (e *Engine) HoldOrder(ctx context.Context) (*heldorder.HeldOrder, error) {
	e.mu.Lock()
	req := e.cart.holdRequest()
	if err := req.Validate(ctx); err != nil {
		e.message = apperror.UserMessage(err)
		e.mu.Unlock()
		return nil, err
	}
	if err := e.beginLocked(opHold); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	heldID, update := e.cart.ActiveHeldOrderID()
	e.mu.Unlock()

	var (
		held *heldorder.HeldOrder
		err  error
	)
	if update {
		held, err = e.held.UpdateHeldOrder(ctx, heldID, req)
	} else {
		held, err = e.held.CreateHeldOrder(ctx, req)
	}

	e.mu.Lock()
	e.busy = ""
	if err != nil {
		e.message = "Error holding order: " + apperror.UserMessage(err)
		e.mu.Unlock()
		e.log.WithContext(ctx).Warnw("failed to hold order", "update", update, "error", err)
		return nil, err
	}
	e.cart.clear(false, e.customers.Default())
	e.pending = nil
	if held != nil && held.Ref != "" {
		e.message = "Order held: " + held.Ref
	} else {
		e.message = "Order held"
	}
	e.mu.Unlock()

	if held != nil {
		heldID = held.ID
	}
	e.log.WithContext(ctx).Infow("order held", "update", update, "held_order_id", heldID)
	e.refreshQuietly(ctx)
	return held, nil
}

// ResumeOrder replaces the cart with a held order and marks it as the
// active held order. The original customer is reselected when still known;
// otherwise the default customer is used and a warning is reported.
func (e *Engine) ResumeOrder(ctx context.Context, h heldorder.HeldOrder) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginLocked(opResume); err != nil {
		return err
	}
	defer func() { e.busy = "" }()

	e.cart.clear(false, e.customers.Default())
	e.pending = nil
	dropped := e.cart.hydrate(h)
	if dropped > 0 {
		e.log.WithContext(ctx).Warnw("dropped held order lines without quantity",
			"held_order_id", h.ID, "dropped", dropped)
	}

	if c, ok := e.customers.Find(h.CustomerID); ok {
		e.cart.setCustomer(&c)
		e.message = fmt.Sprintf("Order resumed %s", h.Ref)
	} else {
		e.message = "Warning: Original customer not found."
	}
	return nil
}

// DeleteHeldOrder removes a held order and refreshes the list. The cart and
// the active held-order context are not touched.
func (e *Engine) DeleteHeldOrder(ctx context.Context, id int64) error {
	if err := e.held.DeleteHeldOrder(ctx, id); err != nil {
		e.setMessage("Error deleting held order: " + apperror.UserMessage(err))
		return err
	}
	e.setMessage("Held order deleted")
	e.refreshQuietly(ctx)
	return nil
}

// RefreshHeldOrders fetches the held-order list. Concurrent calls share one
// request.
func (e *Engine) RefreshHeldOrders(ctx context.Context) ([]heldorder.HeldOrder, error) {
	orders, err := e.fetchHeldOrders(ctx)
	if err != nil {
		e.setMessage("Failed to load held orders: " + apperror.UserMessage(err))
		return nil, err
	}
	return orders, nil
}

// HeldOrders returns the last fetched held-order list.
func (e *Engine) HeldOrders() []heldorder.HeldOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]heldorder.HeldOrder(nil), e.heldOrders...)
}

func (e *Engine) fetchHeldOrders(ctx context.Context) ([]heldorder.HeldOrder, error) {
	v, err, _ := e.flights.Do("held-orders", func() (any, error) {
		return e.held.ListHeldOrders(ctx)
	})
	if err != nil {
		return nil, err
	}

	orders := v.([]heldorder.HeldOrder)
	e.mu.Lock()
	e.heldOrders = orders
	e.mu.Unlock()
	return append([]heldorder.HeldOrder(nil), orders...), nil
}

// refreshQuietly updates the list after a mutation without replacing the
// message that reported the mutation.
func (e *Engine) refreshQuietly(ctx context.Context) {
	if _, err := e.fetchHeldOrders(ctx); err != nil {
		e.log.WithContext(ctx).Warnw("failed to refresh held orders", "error", err)
	}
}
