package sale

import (
	"context"
	"strings"

	"chuipos/internal/core/types"
)

// PaymentForm is the immutable state of the payment dialog.
type PaymentForm struct {
	Amount types.Money
	Method PaymentMethod
	Notes  string
}

// PaymentFormChanges lists the fields to replace; nil fields are kept.
type PaymentFormChanges struct {
	Amount *types.Money
	Method *PaymentMethod
	Notes  *string
}

// NewPaymentForm pre-fills the amount with the remaining balance.
func NewPaymentForm(remaining types.Money) PaymentForm {
	if remaining.IsNegative() {
		remaining = types.Zero()
	}
	return PaymentForm{Amount: remaining.Round(types.MoneyPlaces), Method: MethodCash}
}

// WithChanges returns a copy of f with the non-nil fields of ch applied.
func (f PaymentForm) WithChanges(ch PaymentFormChanges) PaymentForm {
	if ch.Amount != nil {
		f.Amount = *ch.Amount
	}
	if ch.Method != nil {
		f.Method = *ch.Method
	}
	if ch.Notes != nil {
		f.Notes = *ch.Notes
	}
	return f
}

// Payment validates the form and converts it to a payment entry.
func (f PaymentForm) Payment(ctx context.Context) (Payment, error) {
	p := Payment{Amount: f.Amount, Method: f.Method}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		p.Notes = &notes
	}
	if err := p.Validate(ctx); err != nil {
		return Payment{}, err
	}
	return p, nil
}
