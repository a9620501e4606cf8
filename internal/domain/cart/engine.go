package cart

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
	"chuipos/pkg/logger"
)

// Checkout operations guarded against re-entry while a call is outstanding.
const (
	opHold   = "hold"
	opSubmit = "submit"
	opResume = "resume"
)

// Config wires the engine to its collaborators.
type Config struct {
	Catalog    *catalog.Service
	Customers  *customer.Directory
	Sales      *sale.Service
	HeldOrders heldorder.Repository
	Logger     *logger.Logger
}

// Engine owns the cart of one terminal session. All methods are safe for
// concurrent use; network calls run without holding the state lock.
type Engine struct {
	catalog   *catalog.Service
	customers *customer.Directory
	sales     *sale.Service
	held      heldorder.Repository
	log       *logger.Logger

	mu         sync.Mutex
	cart       *Cart
	pending    *catalog.Product
	busy       string
	message    string
	submission Submission

	products         []catalog.Product
	categories       []catalog.Category
	selectedCategory *int64
	heldOrders       []heldorder.HeldOrder

	flights singleflight.Group
}

// NewEngine creates an engine with an empty cart attributed to the default
// customer.
func NewEngine(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Engine{
		catalog:   cfg.Catalog,
		customers: cfg.Customers,
		sales:     cfg.Sales,
		held:      cfg.HeldOrders,
		log:       log.WithComponent("cart"),
		cart:      NewCart(cfg.Customers.Default()),
	}
}

// Load fetches products, categories and customers in parallel.
// A customer failure is reported through Message and does not fail Load.
func (e *Engine) Load(ctx context.Context) error {
	var (
		products    []catalog.Product
		categories  []catalog.Category
		customerErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = e.catalog.Products(gctx, nil)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = e.catalog.Categories(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Independent of the errgroup context so a catalog failure does not
		// abort the customer fetch.
		customerErr = e.customers.Load(ctx)
		return nil
	})
	err := g.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()

	if customerErr != nil {
		e.log.WithContext(ctx).Warnw("failed to load customers", "error", customerErr)
		e.message = "Failed to load customers: " + apperror.UserMessage(customerErr)
	}
	if e.cart.IsEmpty() {
		e.cart.setCustomer(e.customers.Default())
	}
	if err != nil {
		e.log.WithContext(ctx).Errorw("failed to load catalog", "error", err)
		e.message = "Failed to load products: " + apperror.UserMessage(err)
		return err
	}

	e.products = products
	e.categories = categories
	e.selectedCategory = nil
	return nil
}

// SelectCategory reloads the product list for categoryID (nil = all).
func (e *Engine) SelectCategory(ctx context.Context, categoryID *int64) error {
	products, err := e.catalog.Products(ctx, categoryID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.log.WithContext(ctx).Warnw("failed to filter products", "error", err)
		e.message = "Error filtering products: " + apperror.UserMessage(err)
		return err
	}
	e.products = products
	e.selectedCategory = categoryID
	return nil
}

// Products returns the product list currently shown.
func (e *Engine) Products() []catalog.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]catalog.Product(nil), e.products...)
}

// Categories returns the loaded categories.
func (e *Engine) Categories() []catalog.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]catalog.Category(nil), e.categories...)
}

// --- Cart management ---

// AddProduct adds p to the cart. For a variable-priced product nothing is
// added; the product becomes pending and true is returned so the caller can
// prompt for an amount (see ConfirmVariableAmount).
func (e *Engine) AddProduct(p catalog.Product) (awaitingAmount bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("add") != nil {
		return false
	}

	if p.IsVariablePriced {
		cp := p
		e.pending = &cp
		return true
	}
	e.cart.addStandard(p)
	return false
}

// PendingVariable returns the product awaiting an amount, if any.
func (e *Engine) PendingVariable() *catalog.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return nil
	}
	cp := *e.pending
	return &cp
}

// ConfirmVariableAmount adds amount worth of the pending product.
// A zero-priced product is rejected and the pending state is dropped.
// A non-positive amount is rejected and the product stays pending.
func (e *Engine) ConfirmVariableAmount(amount types.Money) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.rejectBusyLocked("add"); err != nil {
		return err
	}
	if e.pending == nil {
		return apperror.NewValidation("no product is awaiting an amount")
	}
	p := *e.pending

	err := e.cart.addVariable(p, amount)
	switch {
	case err == nil, apperror.HasCode(err, apperror.CodeZeroPrice):
		e.pending = nil
	}
	if err != nil {
		e.message = apperror.UserMessage(err)
	}
	return err
}

// CancelVariableAmount discards the pending product.
func (e *Engine) CancelVariableAmount() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("cancel") != nil {
		return
	}
	e.pending = nil
}

// IncrementQuantity adds one unit; no-op for variable or absent lines.
func (e *Engine) IncrementQuantity(productID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("increment") != nil {
		return false
	}
	return e.cart.increment(productID)
}

// DecrementQuantity removes one unit, dropping the line at zero; no-op for
// variable or absent lines.
func (e *Engine) DecrementQuantity(productID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("decrement") != nil {
		return false
	}
	return e.cart.decrement(productID)
}

// RemoveItem deletes the line for productID.
func (e *Engine) RemoveItem(productID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("remove") != nil {
		return false
	}
	return e.cart.remove(productID)
}

// ClearCart empties lines and payments and reselects the default customer.
// The held-order context is kept only when preserveHeldContext is set.
func (e *Engine) ClearCart(preserveHeldContext bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("clear") != nil {
		return
	}
	e.cart.clear(preserveHeldContext, e.customers.Default())
	e.pending = nil
}

// --- Payments ---

// AddPayment appends p while a positive balance remains.
func (e *Engine) AddPayment(ctx context.Context, p sale.Payment) error {
	if err := p.Validate(ctx); err != nil {
		e.setMessage(apperror.UserMessage(err))
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.rejectBusyLocked("add_payment"); err != nil {
		return err
	}
	if err := e.cart.addPayment(p); err != nil {
		e.message = apperror.UserMessage(err)
		return err
	}
	return nil
}

// RemovePayment removes the first payment equal to p.
func (e *Engine) RemovePayment(p sale.Payment) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("remove_payment") != nil {
		return false
	}
	return e.cart.removePayment(p)
}

// NewPaymentForm returns a payment form pre-filled with the remaining balance.
func (e *Engine) NewPaymentForm() sale.PaymentForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return sale.NewPaymentForm(e.cart.Remaining())
}

// CanSubmit returns nil when the sale may be submitted.
func (e *Engine) CanSubmit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.CanSubmit()
}

// --- Customers ---

// SelectCustomer attributes the cart to c.
func (e *Engine) SelectCustomer(c customer.Customer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectBusyLocked("select_customer") != nil {
		return
	}
	e.cart.setCustomer(&c)
}

// FilterCustomers searches the loaded customers by name or phone.
func (e *Engine) FilterCustomers(query string) []customer.Customer {
	return e.customers.Filter(query)
}

// CreateCustomer creates a customer and selects it.
func (e *Engine) CreateCustomer(ctx context.Context, form customer.Form) (*customer.Customer, error) {
	created, err := e.customers.Create(ctx, form)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.message = "Error: " + apperror.UserMessage(err)
		return nil, err
	}
	if e.rejectBusyLocked("select_customer") != nil {
		e.message = fmt.Sprintf("Customer '%s' created; select it once the current request finishes.", created.Name)
		return created, nil
	}
	e.cart.setCustomer(created)
	e.message = fmt.Sprintf("Customer '%s' created.", created.Name)
	return created, nil
}

// --- Sale submission ---

// SubmitSale validates the cart and submits it. On success the cart, payments
// and held-order context are cleared. Any failure leaves the cart untouched.
func (e *Engine) SubmitSale(ctx context.Context) error {
	e.mu.Lock()
	if e.cart.Customer() == nil {
		err := apperror.NewValidation("Please select a customer before submitting a sale.").
			WithDetail("field", "customerId")
		e.message = err.Message
		e.mu.Unlock()
		return err
	}
	if err := e.cart.CanSubmit(); err != nil {
		e.message = apperror.UserMessage(err)
		e.mu.Unlock()
		return err
	}
	if err := e.beginLocked(opSubmit); err != nil {
		e.mu.Unlock()
		return err
	}
	req := e.cart.saleRequest()
	heldID, resumed := e.cart.ActiveHeldOrderID()
	e.submission = Submission{Status: SubmissionLoading}
	e.mu.Unlock()

	err := e.sales.Submit(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = ""

	if err != nil {
		msg := apperror.UserMessage(err)
		if msg == "" {
			msg = "Failed to submit sale"
		}
		e.submission = Submission{Status: SubmissionFailed, Message: msg}
		e.message = msg
		return err
	}

	if resumed {
		e.log.WithContext(ctx).Infow("sale submitted from resumed held order", "held_order_id", heldID)
	}
	e.submission = Submission{Status: SubmissionSuccess}
	e.message = "Sale completed"
	e.cart.clear(false, e.customers.Default())
	e.pending = nil
	return nil
}

// Submission returns the state of the last submission.
func (e *Engine) Submission() Submission {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submission
}

// ResetSubmission returns the submission state to idle.
func (e *Engine) ResetSubmission() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.submission = Submission{}
}

// --- Messages and snapshots ---

// Message returns the last action message.
func (e *Engine) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// ClearMessage marks the current message as shown.
func (e *Engine) ClearMessage() {
	e.setMessage("")
}

func (e *Engine) setMessage(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = msg
}

// Snapshot returns a consistent view of the engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Lines:      e.cart.Lines(),
		Payments:   e.cart.Payments(),
		Total:      e.cart.Total(),
		Paid:       e.cart.Paid(),
		Remaining:  e.cart.Remaining(),
		Customer:   e.cart.Customer(),
		CanSubmit:  e.busy == "" && e.cart.CanSubmit() == nil,
		Busy:       e.busy,
		Message:    e.message,
		Submission: e.submission,
	}
	if id, ok := e.cart.ActiveHeldOrderID(); ok {
		s.ActiveHeldOrderID = &id
	}
	if e.pending != nil {
		p := *e.pending
		s.PendingVariable = &p
	}
	return s
}

// beginLocked marks op in flight, rejecting it while any checkout
// operation is outstanding.
func (e *Engine) beginLocked(op string) error {
	if err := e.rejectBusyLocked(op); err != nil {
		return err
	}
	e.busy = op
	return nil
}

// rejectBusyLocked refuses a cart or payment change while a hold or submit
// is in flight, since its success clears the cart.
func (e *Engine) rejectBusyLocked(op string) error {
	if e.busy == "" {
		return nil
	}
	e.message = "Please wait, the previous request is still in progress."
	return apperror.NewInFlight(e.busy).WithDetail("requested", op)
}
