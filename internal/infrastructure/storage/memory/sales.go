package memory

import (
	"context"
	"time"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/sale"
)

// CodeCreditWalkIn rejects credit tenders for the anonymous customer.
const CodeCreditWalkIn = "CREDIT_REQUIRES_CUSTOMER"

// Sale is a recorded sale.
type Sale struct {
	ID           int64
	Ref          string
	CustomerID   int64
	Items        []sale.Item
	Payments     []sale.Payment
	Total        types.Money
	Paid         types.Money
	IsCreditSale bool
	Cashier      string
	CreatedAt    time.Time
}

// CreateSale records a sale after checking that every product exists and
// payments settle the total.
func (s *Store) CreateSale(ctx context.Context, req sale.Request) (Sale, error) {
	if err := req.Validate(ctx); err != nil {
		return Sale{}, err
	}

	isCredit := false
	for _, p := range req.Payments {
		if p.Method == sale.MethodCredit {
			isCredit = true
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customer(req.CustomerID); !ok {
		return Sale{}, apperror.NewNotFound("Customer", req.CustomerID)
	}
	if isCredit && req.CustomerID == s.cfg.WalkInCustomerID {
		return Sale{}, apperror.NewBusinessRule(CodeCreditWalkIn,
			"Credit sales require a registered customer")
	}
	for i, it := range req.Items {
		if _, ok := s.product(it.ProductID); !ok {
			return Sale{}, apperror.NewNotFound("Product", it.ProductID).WithDetail("lineNo", i+1)
		}
	}

	rec := &Sale{
		ID:           s.nextSaleID,
		Ref:          s.nextRef(SalePrefix),
		CustomerID:   req.CustomerID,
		Items:        append([]sale.Item(nil), req.Items...),
		Payments:     append([]sale.Payment(nil), req.Payments...),
		Total:        req.Total(),
		Paid:         req.Paid(),
		IsCreditSale: isCredit,
		Cashier:      appctx.GetUsername(ctx),
		CreatedAt:    s.now(),
	}
	s.nextSaleID++
	s.sales = append(s.sales, rec)

	s.log.WithContext(ctx).Infow("sale recorded",
		"sale_id", rec.ID,
		"ref", rec.Ref,
		"total", types.Display(rec.Total),
		"credit", rec.IsCreditSale,
	)
	return *rec, nil
}

// Sales lists recorded sales, oldest first.
func (s *Store) Sales(_ context.Context) []Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Sale, 0, len(s.sales))
	for _, rec := range s.sales {
		out = append(out, *rec)
	}
	return out
}
