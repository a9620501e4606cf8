// Package memory implements the POS backend state in process memory.
// It backs the development server and the API client integration tests.
package memory

import (
	"sync"
	"time"

	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/pkg/logger"
	"chuipos/pkg/numerator"
)

// Reference number prefixes.
const (
	HeldOrderPrefix = "HO"
	SalePrefix      = "SL"
)

// Config holds store options.
type Config struct {
	// WalkInCustomerID cannot be used for credit sales
	WalkInCustomerID int64

	// MaxLoginAttempts before the account is locked for LockDuration
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultConfig returns the settings used by the dev server.
func DefaultConfig() Config {
	return Config{
		WalkInCustomerID: 1,
		MaxLoginAttempts: 5,
		LockDuration:     5 * time.Minute,
	}
}

// Store is a thread-safe in-memory backend.
type Store struct {
	cfg  Config
	log  *logger.Logger
	nums *numerator.Service
	now  func() time.Time

	mu         sync.RWMutex
	users      map[string]*User
	categories []catalog.Category
	products   []catalog.Product
	customers  []customer.Customer
	heldOrders map[int64]heldorder.HeldOrder
	sales      []*Sale

	nextCustomerID  int64
	nextHeldOrderID int64
	nextSaleID      int64
}

// New creates an empty store.
func New(cfg Config, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		cfg:             cfg,
		log:             log.WithComponent("store"),
		nums:            numerator.New(numerator.NewMemorySequencer()),
		now:             time.Now,
		users:           make(map[string]*User),
		heldOrders:      make(map[int64]heldorder.HeldOrder),
		nextCustomerID:  1,
		nextHeldOrderID: 1,
		nextSaleID:      1,
	}
}

func (s *Store) nextRef(prefix string) string {
	return s.nums.GetNextNumber(numerator.DefaultConfig(prefix), numerator.DefaultOptions(), s.now())
}
