package customer

import (
	"context"
	"fmt"
	"sync"

	"chuipos/pkg/logger"
)

// Directory caches the customer list for one terminal session.
type Directory struct {
	repo     Repository
	walkInID int64

	mu        sync.RWMutex
	customers []Customer
	walkIn    *Customer
}

// NewDirectory creates a directory. walkInID designates the default
// customer; 0 means there is no default and a customer must be chosen.
func NewDirectory(repo Repository, walkInID int64) *Directory {
	return &Directory{repo: repo, walkInID: walkInID}
}

// Load fetches the customer list and resolves the walk-in customer once.
func (d *Directory) Load(ctx context.Context) error {
	customers, err := d.repo.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	d.replace(ctx, customers)
	return nil
}

func (d *Directory) replace(ctx context.Context, customers []Customer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.customers = customers
	if d.walkIn != nil || d.walkInID == 0 {
		return
	}
	for i := range customers {
		if customers[i].ID == d.walkInID {
			c := customers[i]
			d.walkIn = &c
			return
		}
	}
	logger.Warn(ctx, "walk-in customer not in customer list", "customer_id", d.walkInID)
	d.walkIn = &Customer{ID: d.walkInID, Name: WalkInName}
}

// All returns a copy of the loaded customers.
func (d *Directory) All() []Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Customer(nil), d.customers...)
}

// Filter returns loaded customers matching query by name or phone.
func (d *Directory) Filter(query string) []Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Customer, 0, len(d.customers))
	for _, c := range d.customers {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

// Find looks a customer up by id among the loaded customers.
func (d *Directory) Find(id int64) (Customer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// Default returns the walk-in customer, or nil when none is configured.
// Before the first successful Load it is synthesized from the configured id.
func (d *Directory) Default() *Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.walkIn != nil {
		c := *d.walkIn
		return &c
	}
	if d.walkInID == 0 {
		return nil
	}
	return &Customer{ID: d.walkInID, Name: WalkInName}
}

// Create validates form, creates the customer remotely and reloads the list.
// A failed reload is logged; the created customer is still returned.
func (d *Directory) Create(ctx context.Context, form Form) (*Customer, error) {
	if err := form.Validate(ctx); err != nil {
		return nil, err
	}

	created, err := d.repo.CreateCustomer(ctx, form.Request())
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	if err := d.Load(ctx); err != nil {
		logger.Warn(ctx, "failed to refresh customers", "error", err)
		d.mu.Lock()
		d.customers = append(d.customers, *created)
		d.mu.Unlock()
	}

	logger.Info(ctx, "customer created", "id", created.ID, "name", created.Name)
	return created, nil
}
