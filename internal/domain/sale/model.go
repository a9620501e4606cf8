// Package sale provides finalized sale submission.
package sale

import (
	"context"
	"fmt"

	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
)

// PaymentMethod is a tender type.
type PaymentMethod string

const (
	MethodCash          PaymentMethod = "CASH"
	MethodMobileMoney   PaymentMethod = "MOBILE_MONEY"
	MethodCard          PaymentMethod = "CARD"
	MethodCredit        PaymentMethod = "CREDIT"
	MethodComplimentary PaymentMethod = "COMPLIMENTARY"
)

// Methods lists tenders in the order they are offered to the cashier.
var Methods = []PaymentMethod{MethodCash, MethodMobileMoney, MethodCard, MethodCredit, MethodComplimentary}

// ParseMethod accepts a method name case-sensitively as listed in Methods.
// "MPESA" is accepted as an alias of MOBILE_MONEY.
func ParseMethod(s string) (PaymentMethod, error) {
	if s == "MPESA" {
		return MethodMobileMoney, nil
	}
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", apperror.NewValidation(fmt.Sprintf("unknown payment method %q", s)).WithDetail("field", "method")
}

// Payment is one tender applied toward a sale.
type Payment struct {
	Amount types.Money
	Method PaymentMethod
	Notes  *string
}

// Equal compares payments by value.
func (p Payment) Equal(o Payment) bool {
	if !p.Amount.Equal(o.Amount) || p.Method != o.Method {
		return false
	}
	switch {
	case p.Notes == nil && o.Notes == nil:
		return true
	case p.Notes == nil || o.Notes == nil:
		return false
	default:
		return *p.Notes == *o.Notes
	}
}

// Validate checks payment invariants.
func (p Payment) Validate(_ context.Context) error {
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").WithDetail("field", "amount")
	}
	if _, err := ParseMethod(string(p.Method)); err != nil {
		return err
	}
	return nil
}

// Item is one sold line.
type Item struct {
	ProductID int64
	Quantity  types.Quantity
	Price     types.Money
	Discount  types.Money
}

// Request is a finalized sale.
type Request struct {
	Items      []Item
	Payments   []Payment
	CustomerID int64
}

// Total is the sum of price*quantity over items.
func (r Request) Total() types.Money {
	total := types.Zero()
	for _, it := range r.Items {
		total = total.Add(it.Price.Mul(it.Quantity).Sub(it.Discount))
	}
	return total
}

// Paid is the sum of payment amounts.
func (r Request) Paid() types.Money {
	paid := types.Zero()
	for _, p := range r.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// Validate checks that the sale can be submitted.
func (r Request) Validate(ctx context.Context) error {
	if r.CustomerID == 0 {
		return apperror.NewValidation("Please select a customer before submitting a sale.").
			WithDetail("field", "customerId")
	}
	if len(r.Items) == 0 {
		return apperror.NewValidation("at least one item is required").WithDetail("field", "items")
	}
	if len(r.Payments) == 0 {
		return apperror.NewValidation("at least one payment is required").WithDetail("field", "payments")
	}
	for i, it := range r.Items {
		if !it.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}
	for i, p := range r.Payments {
		if err := p.Validate(ctx); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("paymentNo", i+1)
			}
			return err
		}
	}
	remaining := r.Total().Sub(r.Paid())
	if !types.IsSettled(remaining) {
		return apperror.NewValidation("payments do not match the sale total").
			WithDetail("total", types.Display(r.Total())).
			WithDetail("paid", types.Display(r.Paid())).
			WithDetail("remaining", types.Display(remaining))
	}
	return nil
}
