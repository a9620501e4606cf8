package cart

import (
	"chuipos/internal/core/types"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/sale"
)

// SubmissionStatus is the state of the last sale submission.
type SubmissionStatus int

const (
	SubmissionIdle SubmissionStatus = iota
	SubmissionLoading
	SubmissionSuccess
	SubmissionFailed
)

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionLoading:
		return "loading"
	case SubmissionSuccess:
		return "success"
	case SubmissionFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Submission describes the last sale submission.
type Submission struct {
	Status  SubmissionStatus
	Message string
}

// Snapshot is an immutable view of the engine for rendering.
type Snapshot struct {
	Lines     []Line
	Payments  []sale.Payment
	Total     types.Money
	Paid      types.Money
	Remaining types.Money

	Customer          *customer.Customer
	ActiveHeldOrderID *int64
	PendingVariable   *catalog.Product

	// CanSubmit mirrors Cart.CanSubmit() == nil.
	CanSubmit bool

	// Busy names the checkout operation waiting on the server, if any.
	Busy string

	Message    string
	Submission Submission
}
