// Package cart provides the in-memory sale construction engine: cart lines,
// partial payments, customer selection and the held-order lifecycle.
package cart

import (
	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
)

// Line is one product's presence in the cart.
type Line struct {
	ProductID        int64
	Name             string
	UnitPrice        types.Money
	Quantity         types.Quantity
	IsVariablePriced bool
	UnitName         string
}

// Total is UnitPrice * Quantity.
func (l Line) Total() types.Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart is the working set of the transaction being built.
// It is not safe for concurrent use; Engine serializes access.
type Cart struct {
	lines map[int64]*Line
	order []int64

	payments []sale.Payment
	total    types.Money

	customer     *customer.Customer
	activeHeldID *int64
}

// NewCart creates an empty cart attributed to def (may be nil).
func NewCart(def *customer.Customer) *Cart {
	c := &Cart{lines: make(map[int64]*Line)}
	c.customer = cloneCustomer(def)
	c.total = types.Zero()
	return c
}

// --- Reads ---

// Lines returns copies of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Line returns the line for productID.
func (c *Cart) Line(productID int64) (Line, bool) {
	l, ok := c.lines[productID]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Total is the sum of all line totals.
func (c *Cart) Total() types.Money { return c.total }

// Payments returns a copy of the payments in the order they were added.
func (c *Cart) Payments() []sale.Payment {
	return append([]sale.Payment(nil), c.payments...)
}

// Paid is the sum of payment amounts.
func (c *Cart) Paid() types.Money {
	paid := types.Zero()
	for _, p := range c.payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// Remaining is Total - Paid; derived on every call.
func (c *Cart) Remaining() types.Money {
	return c.total.Sub(c.Paid())
}

// Customer returns the selected customer or nil.
func (c *Cart) Customer() *customer.Customer { return cloneCustomer(c.customer) }

// ActiveHeldOrderID returns the held order being edited, if any.
func (c *Cart) ActiveHeldOrderID() (int64, bool) {
	if c.activeHeldID == nil {
		return 0, false
	}
	return *c.activeHeldID, true
}

// CanSubmit returns nil when the sale may be submitted: lines present,
// customer selected, at least one payment and |remaining| < 0.01.
func (c *Cart) CanSubmit() error {
	if c.IsEmpty() {
		return apperror.NewValidation("No items in cart").WithDetail("field", "items")
	}
	if c.customer == nil {
		return apperror.NewValidation("Please select a customer before submitting a sale.").
			WithDetail("field", "customerId")
	}
	if len(c.payments) == 0 {
		return apperror.NewValidation("Add a payment before submitting the sale.").
			WithDetail("field", "payments")
	}
	if remaining := c.Remaining(); !types.IsSettled(remaining) {
		return apperror.NewValidation("Payments do not match the sale total.").
			WithDetail("remaining", types.Display(remaining))
	}
	return nil
}

// --- Line mutations ---

// addStandard adds one unit of a standard product. An existing variable
// line for the same product is left alone.
func (c *Cart) addStandard(p catalog.Product) bool {
	if l, ok := c.lines[p.ID]; ok {
		if l.IsVariablePriced {
			return false
		}
		l.Quantity = l.Quantity.Add(types.One())
		c.recalculate()
		return true
	}

	c.insert(&Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  types.One(),
		UnitName:  p.SaleUnitName(),
	})
	return true
}

// addVariable adds amount worth of a variable-priced product, topping up
// any existing line.
func (c *Cart) addVariable(p catalog.Product, amount types.Money) error {
	if !p.Price.IsPositive() {
		return apperror.NewZeroPrice(p.ID)
	}
	if !amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").WithDetail("field", "amount")
	}

	qty := amount.Div(p.Price)
	if l, ok := c.lines[p.ID]; ok {
		l.Quantity = l.Quantity.Add(qty)
		l.IsVariablePriced = true
		l.UnitPrice = p.Price
		c.recalculate()
		return nil
	}

	c.insert(&Line{
		ProductID:        p.ID,
		Name:             p.Name,
		UnitPrice:        p.Price,
		Quantity:         qty,
		IsVariablePriced: true,
		UnitName:         p.SaleUnitName(),
	})
	return nil
}

// increment adds one unit to a standard line.
func (c *Cart) increment(productID int64) bool {
	l, ok := c.lines[productID]
	if !ok || l.IsVariablePriced {
		return false
	}
	l.Quantity = l.Quantity.Add(types.One())
	c.recalculate()
	return true
}

// decrement removes one unit from a standard line, dropping it at zero.
func (c *Cart) decrement(productID int64) bool {
	l, ok := c.lines[productID]
	if !ok || l.IsVariablePriced {
		return false
	}
	next := l.Quantity.Sub(types.One())
	if !next.IsPositive() {
		return c.remove(productID)
	}
	l.Quantity = next
	c.recalculate()
	return true
}

// remove deletes the line unconditionally.
func (c *Cart) remove(productID int64) bool {
	if _, ok := c.lines[productID]; !ok {
		return false
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.recalculate()
	return true
}

// clear empties lines and payments and resets the customer to def.
// The held-order context survives only when preserveHeld is set.
func (c *Cart) clear(preserveHeld bool, def *customer.Customer) {
	c.lines = make(map[int64]*Line)
	c.order = nil
	c.payments = nil
	c.customer = cloneCustomer(def)
	if !preserveHeld {
		c.activeHeldID = nil
	}
	c.recalculate()
}

// hydrate fills an empty cart from a held order. Lines without a positive
// quantity are dropped; repeated products are merged.
func (c *Cart) hydrate(h heldorder.HeldOrder) (dropped int) {
	for _, it := range h.Items {
		if !it.Quantity.IsPositive() {
			dropped++
			continue
		}
		if l, ok := c.lines[it.ProductID]; ok {
			l.Quantity = l.Quantity.Add(it.Quantity)
			continue
		}
		c.lines[it.ProductID] = &Line{
			ProductID:        it.ProductID,
			Name:             it.ProductName,
			UnitPrice:        it.Price,
			Quantity:         it.Quantity,
			IsVariablePriced: it.IsVariablePriced,
		}
		c.order = append(c.order, it.ProductID)
	}
	id := h.ID
	c.activeHeldID = &id
	c.recalculate()
	return dropped
}

func (c *Cart) insert(l *Line) {
	c.lines[l.ProductID] = l
	c.order = append(c.order, l.ProductID)
	c.recalculate()
}

func (c *Cart) recalculate() {
	total := types.Zero()
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	c.total = total
}

// --- Payments ---

// addPayment appends p while a positive balance remains. The amount is not
// clamped; an overpayment is caught by CanSubmit.
func (c *Cart) addPayment(p sale.Payment) error {
	if !c.Remaining().IsPositive() {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "Sale is already fully paid.").
			WithDetail("remaining", types.Display(c.Remaining()))
	}
	c.payments = append(c.payments, p)
	return nil
}

// removePayment removes the first payment equal to p.
func (c *Cart) removePayment(p sale.Payment) bool {
	for i := range c.payments {
		if c.payments[i].Equal(p) {
			c.payments = append(c.payments[:i], c.payments[i+1:]...)
			return true
		}
	}
	return false
}

// --- Customer ---

func (c *Cart) setCustomer(cust *customer.Customer) {
	c.customer = cloneCustomer(cust)
}

// --- Snapshots sent to the backend ---

func (c *Cart) saleRequest() sale.Request {
	req := sale.Request{
		Items:    make([]sale.Item, 0, len(c.order)),
		Payments: c.Payments(),
	}
	if c.customer != nil {
		req.CustomerID = c.customer.ID
	}
	for _, l := range c.Lines() {
		req.Items = append(req.Items, sale.Item{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
			Discount:  types.Zero(),
		})
	}
	return req
}

func (c *Cart) holdRequest() heldorder.Request {
	req := heldorder.Request{Items: make([]heldorder.ItemRequest, 0, len(c.order))}
	if c.customer != nil {
		req.CustomerID = c.customer.ID
	}
	for _, l := range c.Lines() {
		req.Items = append(req.Items, heldorder.ItemRequest{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return req
}

func cloneCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
